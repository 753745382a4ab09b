package handlers

import (
	"lawyer_landing_go/config"
	"lawyer_landing_go/models"
	"lawyer_landing_go/templates"
)

const siteKeywords = "advogada imobiliário, advogada família, regularização de imóveis, inventário extrajudicial, divórcio consensual, planejamento sucessório, São José do Rio Preto"

// SEO configurations per page composition; Canonical and OGImage are filled per request
var pageSEO = map[string]*models.SEO{
	templates.VariantFull: {
		Title:       "Aline Santesso | Advogada em Direito Imobiliário e de Família",
		Description: "Dra. Aline Santesso, OAB/SP 497.122. Regularização de imóveis, due diligence, inventários, divórcio e planejamento sucessório com atendimento personalizado.",
		Keywords:    siteKeywords,
		ImageAlt:    "Aline Santesso, advogada em Direito Imobiliário e de Família",
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "pt_BR",
	},
	templates.VariantProfile: {
		Title:       "Dra. Aline Santesso | Apresentação",
		Description: "Conheça a Dra. Aline Santesso, advogada especialista em Direito Imobiliário e Direito de Família inscrita na OAB/SP 497.122.",
		Keywords:    siteKeywords,
		ImageAlt:    "Apresentação da Dra. Aline Santesso",
		OGType:      "profile",
		TwitterCard: "summary_large_image",
		Locale:      "pt_BR",
	},
}

// pagePaths maps each composition to its route
var pagePaths = map[string]string{
	templates.VariantFull:    "/",
	templates.VariantProfile: "/apresentacao",
}

// GetSEO returns the SEO configuration for a composition
func GetSEO(variant string, cfg *config.Config) *models.SEO {
	seo, ok := pageSEO[variant]
	if !ok {
		return nil
	}
	return seo.ForPage(cfg.AppURL+pagePaths[variant], cfg.OGImage(), !cfg.IsProduction())
}
