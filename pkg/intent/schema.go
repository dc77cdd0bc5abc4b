package intent

import "github.com/sashabaranov/go-openai/jsonschema"

// Schema returns the JSON schema the extraction response must validate
// against. The schema mirrors types.QueryFilter field for field; it is the
// contract with the provider.
func Schema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"hard_constraints": {
				Type:        jsonschema.Object,
				Description: "Structured variables for database filtering (hard filters). Unmentioned criteria must be null.",
				Properties: map[string]jsonschema.Definition{
					"city": {
						Type:        jsonschema.String,
						Description: "The specific city name extracted from the user query (e.g. '高雄市'). Null if not mentioned.",
					},
					"district": {
						Type:        jsonschema.String,
						Description: "The specific district name (e.g. '楠梓區'). Null if not mentioned.",
					},
					"street": {
						Type:        jsonschema.String,
						Description: "The specific street name (e.g. '右昌街'). Null if not mentioned.",
					},
					"min_price": {
						Type:        jsonschema.Integer,
						Description: "Minimum budget in TWD as an integer (e.g. 10000000 for 1000萬). Null if not mentioned.",
					},
					"max_price": {
						Type:        jsonschema.Integer,
						Description: "Maximum budget in TWD as an integer. Null if not mentioned.",
					},
					"min_interior_area": {
						Type:        jsonschema.Number,
						Description: "Minimum interior area in ping (坪). Null if not mentioned.",
					},
					"min_bedroom": {
						Type:        jsonschema.Integer,
						Description: "Minimum number of bedrooms required. Null if not mentioned.",
					},
					"min_bathroom": {
						Type:        jsonschema.Integer,
						Description: "Minimum number of bathrooms required. Null if not mentioned.",
					},
					"property_type": {
						Type:        jsonschema.String,
						Enum:        []string{"townhouse", "condo"},
						Description: "The property category. '透天/別墅' -> 'townhouse', '大樓/公寓/華廈' -> 'condo'. Null otherwise.",
					},
					"min_age": {
						Type:        jsonschema.Integer,
						Description: "Minimum property age in years. Null if not mentioned.",
					},
					"max_age": {
						Type:        jsonschema.Integer,
						Description: "Maximum property age in years. Null if not mentioned.",
					},
				},
			},
			"soft_requirements": {
				Type:        jsonschema.Array,
				Description: "Abstract requirements, stylistic preferences or facility needs (soft filters) in Traditional Chinese (e.g. ['開放式廚房', '採光好']).",
				Items: &jsonschema.Definition{
					Type: jsonschema.String,
				},
			},
		},
		Required: []string{"hard_constraints", "soft_requirements"},
	}
}
