package inflect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := map[string][]string{
		"user_name":      {"user", "name"},
		"UserProfile":    {"user", "profile"},
		"userID":         {"user", "id"},
		"HTTPServer":     {"http", "server"},
		"kebab-case-id":  {"kebab", "case", "id"},
		"  spaced  out ": {"spaced", "out"},
		"v2Api":          {"v2", "api"},
		"":               nil,
	}
	for in, want := range tests {
		assert.Equal(t, want, Words(in), "Words(%q)", in)
	}
}

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in                                           string
		pascal, camel, snake, kebab, constant, title string
	}{
		{"user_profile", "UserProfile", "userProfile", "user_profile", "user-profile", "USER_PROFILE", "User Profile"},
		{"UserProfile", "UserProfile", "userProfile", "user_profile", "user-profile", "USER_PROFILE", "User Profile"},
		{"maxRetries", "MaxRetries", "maxRetries", "max_retries", "max-retries", "MAX_RETRIES", "Max Retries"},
		{"api-client", "ApiClient", "apiClient", "api_client", "api-client", "API_CLIENT", "Api Client"},
		{"button", "Button", "button", "button", "button", "BUTTON", "Button"},
		{"", "", "", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
			assert.Equal(t, tt.kebab, KebabCase(tt.in))
			assert.Equal(t, tt.constant, ConstantCase(tt.in))
			assert.Equal(t, tt.title, TitleCase(tt.in))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{"user", "users"},
		{"class", "classes"},
		{"box", "boxes"},
		{"church", "churches"},
		{"dish", "dishes"},
		{"city", "cities"},
		{"key", "keys"},
		{"hero", "heroes"},
		{"photo", "photos"},
		{"video", "videos"},
		{"leaf", "leaves"},
		{"knife", "knives"},
		{"chef", "chefs"},
		{"person", "people"},
		{"Person", "People"},
		{"CHILD", "CHILDREN"},
		{"data", "data"},
		{"BlogPost", "BlogPosts"},
		{"SalesPerson", "SalesPeople"},
		{"order_item", "order_items"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.plural, Pluralize(tt.singular), "Pluralize(%q)", tt.singular)
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		plural   string
		singular string
	}{
		{"users", "user"},
		{"classes", "class"},
		{"boxes", "box"},
		{"churches", "church"},
		{"cities", "city"},
		{"heroes", "hero"},
		{"leaves", "leaf"},
		{"knives", "knife"},
		{"people", "person"},
		{"Children", "Child"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"metadata", "metadata"},
		{"BlogPosts", "BlogPost"},
		{"user", "user"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.singular, Singularize(tt.plural), "Singularize(%q)", tt.plural)
	}
}

func TestPluralizeRoundTrip(t *testing.T) {
	for _, w := range []string{"user", "city", "box", "hero", "knife", "leaf", "person", "Order", "lineItem"} {
		assert.Equal(t, w, Singularize(Pluralize(w)), w)
	}
}
