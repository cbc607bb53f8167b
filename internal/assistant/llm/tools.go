package llm

// Action names the model may request. The dispatcher maps each to one
// cascade entry point.
const (
	ActionCreateClient      = "create_client"
	ActionOpenProject       = "open_project"
	ActionRecordTransaction = "record_transaction"
)

// SystemPrompt frames the assistant for the agency hub.
const SystemPrompt = `You are the operations brain of the Luminus marketing agency.
When the user describes a new deal, use the declared tools to register the
client, open the project and record the finance entry. Be proactive: a
project worth 5000 means a 5000 income entry. Answer briefly and directly.`

// AgencyTools declares the callable actions exposed to the model.
func AgencyTools() []FunctionDeclaration {
	return []FunctionDeclaration{
		{
			Name:        ActionCreateClient,
			Description: "Registers a new client in the system.",
			Parameters: Schema{
				Type: "object",
				Properties: map[string]Schema{
					"company":      {Type: "string", Description: "Company or legal name."},
					"name":         {Type: "string", Description: "Account contact name."},
					"email":        {Type: "string", Description: "Contact e-mail."},
					"phone":        {Type: "string", Description: "Phone or WhatsApp."},
					"billing_type": {Type: "string", Description: "Billing model.", Enum: []string{"recurring", "one_time"}},
				},
				Required: []string{"company", "name", "email", "phone", "billing_type"},
			},
		},
		{
			Name:        ActionOpenProject,
			Description: "Opens a new marketing project and links it to finance.",
			Parameters: Schema{
				Type: "object",
				Properties: map[string]Schema{
					"name":         {Type: "string", Description: "Project or campaign name."},
					"client_name":  {Type: "string", Description: "Company name of a registered client."},
					"budget":       {Type: "number", Description: "Total project value."},
					"service_type": {Type: "string", Description: "Service type (e.g. Social Media, Google Ads, SEO)."},
					"due_date":     {Type: "string", Description: "Delivery date, YYYY-MM-DD."},
				},
				Required: []string{"name", "client_name", "budget", "service_type", "due_date"},
			},
		},
		{
			Name:        ActionRecordTransaction,
			Description: "Records a manual income or expense entry.",
			Parameters: Schema{
				Type: "object",
				Properties: map[string]Schema{
					"description": {Type: "string", Description: "Entry description."},
					"amount":      {Type: "number", Description: "Entry amount."},
					"type":        {Type: "string", Description: "Entry direction.", Enum: []string{"income", "expense"}},
				},
				Required: []string{"description", "amount", "type"},
			},
		},
	}
}
