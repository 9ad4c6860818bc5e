package settings

import (
	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla"
)

// OptionKey names the stored option blob and qualifies submitted field names.
const OptionKey = "instant-articles-option-publishing"

// Field ids.
const (
	FieldCategories         = "categories"
	FieldDevMode            = "dev_mode"
	FieldCustomRulesEnabled = "custom_rules_enabled"
	FieldCustomRules        = "custom_rules"
)

// CategoriesRenderer is the component name of the category multi-select.
const CategoriesRenderer = "categories"

// LocalizationObject is the client-side global carrying the field ids.
const LocalizationObject = "INSTANT_ARTICLES_OPTION_PUBLISHING"

// PublishingSection is the single section all fields belong to.
var PublishingSection = model.Section{
	Key:   OptionKey,
	Title: "Publishing Settings",
}

// Fields returns the publishing field descriptors in display order.
func Fields() []model.Field {
	return []model.Field{
		{
			ID:          FieldCategories,
			Label:       "Categories",
			Description: "Limit your feed to the selected categories. Hold down CTRL/Command to select multiple categories. If you do not select any categories, they will all be included in the feed.",
			Render:      model.RenderCustom,
			Renderer:    CategoriesRenderer,
			Default:     "",
		},
		{
			ID:          FieldDevMode,
			Label:       "Development Mode",
			Description: `Articles published while in Development Mode are saved as "drafts" within Facebook and will not be made live. Note: Since articles in "draft" are not reviewed, Development Mode should be disabled when publishing articles to Facebook which you intend to use in your <a href="https://developers.facebook.com/docs/instant-articles/publishing#review" target="_blank">one-time review</a>.`,
			Render:      model.RenderCheckbox,
			Default:     false,
			Extra:       map[string]string{model.ExtraCheckboxLabel: "Enable development mode"},
		},
		{
			ID:          FieldCustomRulesEnabled,
			Label:       "Custom transformer rules",
			Description: "Define your own rules to customize the transformation of your content into Instant Articles",
			Render:      model.RenderCheckbox,
			Default:     "",
			Extra:       map[string]string{model.ExtraCheckboxLabel: "Enable custom transformer rules"},
		},
		{
			ID:           FieldCustomRules,
			Label:        "",
			Description:  `Read more about <a href="https://github.com/facebook/facebook-instant-articles-sdk-php/blob/master/docs/QuickStart.md#custom-transformer-rules" target="_blank">defining your own custom rules</a> to extend/override the <a href="https://github.com/Automattic/facebook-instant-articles-wp/blob/master/rules-configuration.json" target="_blank">built-in ruleset</a>. If you've defined a common rule which you think this plugin should include by default, <a href="https://github.com/Automattic/facebook-instant-articles-wp/issues/new" target="_blank">tell us about it</a>!`,
			Render:       model.RenderTextarea,
			Default:      "",
			Extra:        map[string]string{model.ExtraPlaceholder: `{ "rules": [{ "class": "BoldRule", "selector": "span.bold" }, ... ] }`},
			ValidateWhen: "truthy(" + FieldCustomRulesEnabled + ")",
		},
	}
}

// Schema builds the immutable publishing schema.
func Schema() *model.Schema {
	return model.MustSchema(PublishingSection, Fields()...)
}

// Localization returns the constant object handed to client-side script. The
// categories entry keeps the id the plugin has always published, even though
// the rendered select uses OptionKey + "-categories".
func Localization() *vanilla.Localization {
	return &vanilla.Localization{
		Object: LocalizationObject,
		Data: map[string]string{
			"option_field_id_custom_rules_enabled": OptionKey + "-" + FieldCustomRulesEnabled,
			"option_field_id_custom_rules":         OptionKey + "-" + FieldCustomRules,
			"option_field_id_categories":           OptionKey + "-custom_rules_categories",
		},
	}
}
