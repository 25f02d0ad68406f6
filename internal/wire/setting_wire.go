package wire

import (
	"chakai-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSetting(r chi.Router, settingHandler *adaptor.SettingHandler, admin chi.Middlewares) {
	r.Get("/api/settings/public", settingHandler.GetPublicSettings)

	r.Group(func(r chi.Router) {
		r.Use(admin...)

		r.Get("/api/admin/settings", settingHandler.GetSettings)
		r.Put("/api/admin/settings", settingHandler.UpdateSettings)
	})
}
