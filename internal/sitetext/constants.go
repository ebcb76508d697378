package sitetext

// Well-known override keys edited through the admin dashboard.
const (
	// HeroLeadKey is the key for the hero section lead paragraph.
	HeroLeadKey = "hero_lead"
	// HeroTitleKey is the key for the hero section title.
	HeroTitleKey = "hero_title"
	// HeroBackgroundURLKey is the key for the hero background image URL.
	HeroBackgroundURLKey = "hero_background_url"
	// BannerHTMLKey is the key for the promo banner HTML body.
	BannerHTMLKey = "banner_html"
	// BannerLinkKey is the key for the promo banner click-through link.
	BannerLinkKey = "banner_link"
	// BannerEnabledKey toggles the promo banner ("true"/"false").
	BannerEnabledKey = "banner_enabled"
	// ServicesLeadKey is the key for the services section lead paragraph.
	ServicesLeadKey = "services_lead"
	// AboutTextKey is the key for the about section body.
	AboutTextKey = "about_text"
	// ContactEmailKey is the key for the displayed contact address.
	ContactEmailKey = "contact_email"
	// FooterTextKey is the key for the footer blurb.
	FooterTextKey = "footer_text"
)

// Defaults maps override keys to their compiled-in fallback values. A key
// absent from the store, or stored with a blank value, resolves to its
// entry here.
var Defaults = map[string]string{
	HeroTitleKey:     "Impression 3D sur mesure",
	HeroLeadKey:      "Du prototype à la petite série, nous donnons vie à vos projets.",
	BannerHTMLKey:    "",
	BannerLinkKey:    "",
	BannerEnabledKey: "false",
	ServicesLeadKey:  "Modélisation, impression FDM et résine, finitions.",
	AboutTextKey:     "Atelier d'impression 3D installé dans les Vosges.",
	ContactEmailKey:  "contact@atelier3d.example",
	FooterTextKey:    "Atelier3D — impression 3D sur mesure",
}

// DefaultFor returns the compiled-in default for a key, empty when none
// is registered.
func DefaultFor(key string) string {
	return Defaults[key]
}
