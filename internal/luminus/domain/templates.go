package domain

// taskTemplates maps a service type to the standard checklist a new project
// of that type starts with. Service types without a template start empty.
var taskTemplates = map[string][]string{
	"Social Media": {
		"Kickoff meeting",
		"Content calendar draft",
		"Visual identity pack",
		"First posts batch",
		"Monthly performance report",
	},
	"Google Ads": {
		"Account audit",
		"Keyword research",
		"Campaign structure",
		"Launch campaigns",
		"Optimization review",
	},
	"SEO": {
		"Technical audit",
		"On-page fixes",
		"Content plan",
		"Link building round",
	},
	"Branding": {
		"Discovery workshop",
		"Moodboard",
		"Logo proposals",
		"Brand guidelines",
	},
}

// TemplateTasks returns a freshly built checklist for the given service
// type, or nil when no template is defined.
func TemplateTasks(serviceType string) ([]ProjectTask, error) {
	texts, ok := taskTemplates[serviceType]
	if !ok {
		return nil, nil
	}
	tasks := make([]ProjectTask, 0, len(texts))
	for _, text := range texts {
		id, err := NewID(TaskIDPrefix)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, ProjectTask{ID: id, Text: text})
	}
	return tasks, nil
}
