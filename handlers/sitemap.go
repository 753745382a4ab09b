package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler lists both page compositions
func GetSitemapHandler(c echo.Context) error {
	baseURL := getConfig(c).AppURL

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: baseURL + "/", ChangeFreq: "monthly", Priority: 1.0},
			{Loc: baseURL + "/apresentacao", ChangeFreq: "monthly", Priority: 0.8},
		},
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// GetRobotsHandler allows the public pages and points crawlers at the sitemap
func GetRobotsHandler(c echo.Context) error {
	cfg := getConfig(c)

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if cfg.IsProduction() {
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /admin/\n")
		b.WriteString("Disallow: /contato\n")
		b.WriteString("Disallow: /faq/\n")
	} else {
		b.WriteString("Disallow: /\n")
	}
	b.WriteString("\nSitemap: " + cfg.AppURL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}
