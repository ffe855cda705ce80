// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "github.com/go-chi/chi/v5"

// Routes registers the API endpoints on r. Paths are relative, so mount
// the router under /api.
func (a *API) Routes(r chi.Router) {
	r.Get("/presets", a.Presets)

	r.Route("/brands", func(r chi.Router) {
		r.Get("/", a.ListBrands)
		r.Post("/", a.CreateBrand)

		r.Route("/{brandID}", func(r chi.Router) {
			r.Get("/", a.GetBrand)
			r.Put("/", a.UpdateBrandIdentity)

			r.Get("/templates", a.ListTemplates)
			r.Post("/templates", a.CreateTemplate)

			r.Get("/assets", a.ListAssets)
			r.Post("/assets", a.UploadAsset)
		})
	})

	r.Route("/templates/{id}", func(r chi.Router) {
		r.Get("/", a.GetTemplate)
		r.Put("/", a.ReplaceTemplate)
		r.Delete("/", a.DeleteTemplate)
		r.Post("/duplicate", a.DuplicateTemplate)
		r.Post("/resize", a.ResizeTemplate)

		// Editor
		r.Post("/layers", a.AddLayer)
		r.Route("/layers/{layerID}", func(r chi.Router) {
			r.Patch("/", a.UpdateLayer)
			r.Delete("/", a.RemoveLayer)
			r.Post("/front", a.BringToFront)
			r.Post("/back", a.SendToBack)
			r.Post("/select", a.SelectLayer)
		})
		r.Post("/place", a.PlaceAsset)
		r.Put("/zoom", a.SetZoom)
		r.Get("/scene", a.Scene)
		r.Get("/guardrails", a.Guardrails)
		r.Get("/assets", a.TemplateAssets)
	})

	r.Delete("/assets/{id}", a.DeleteAsset)
}
