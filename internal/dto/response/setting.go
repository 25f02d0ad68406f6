package response

type PublicSettingsResponse struct {
	GreetingText  string `json:"greeting_text"`
	GreetingHTML  string `json:"greeting_html"`
	GreetingImage string `json:"greeting_image"`
	HeroImage     string `json:"hero_image"`
}

type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
