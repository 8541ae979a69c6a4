// Package validation validates configuration structs using struct tags.
//
//	type Settings struct {
//	    BaseURL    string `mapstructure:"base_url" validate:"omitempty,http_url"`
//	    APIVersion string `mapstructure:"api_version" validate:"required,api_version"`
//	}
//	err := validation.Validate(settings)
//
// Field names in errors follow the mapstructure key so they match the
// configuration file and environment variable names.
package validation
