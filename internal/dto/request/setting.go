package request

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1"`
}
