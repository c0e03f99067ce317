package auth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AuthType discriminates the auth variants in provider configuration.
type AuthType string

const (
	APIKeyType AuthType = "api_key"
	BearerType AuthType = "bearer"
)

// Auth is implemented by all concrete auth types.
type Auth interface {
	// Type returns the discriminator.
	Type() AuthType
	// Validate checks the configuration is usable.
	Validate() error
	// Headers returns the request headers this auth contributes.
	Headers() map[string]string
}

// ApiKeyAuth injects a static key into a named request header.
type ApiKeyAuth struct {
	AuthType AuthType `json:"auth_type" yaml:"auth_type"`
	APIKey   string   `json:"api_key" yaml:"api_key"`
	VarName  string   `json:"var_name" yaml:"var_name"`
	Location string   `json:"location" yaml:"location"`
}

func NewApiKeyAuth(key string) *ApiKeyAuth {
	return &ApiKeyAuth{
		AuthType: APIKeyType,
		APIKey:   key,
		VarName:  "X-Api-Key",
		Location: "header",
	}
}

func (a *ApiKeyAuth) Type() AuthType { return a.AuthType }

func (a *ApiKeyAuth) Validate() error {
	if a.APIKey == "" {
		return errors.New("api key auth: api_key is required")
	}
	if a.Location != "" && a.Location != "header" {
		return fmt.Errorf("api key auth: unsupported location %q", a.Location)
	}
	return nil
}

func (a *ApiKeyAuth) Headers() map[string]string {
	name := a.VarName
	if name == "" {
		name = "X-Api-Key"
	}
	return map[string]string{name: a.APIKey}
}

// BearerAuth sets an "Authorization: Bearer <token>" header.
type BearerAuth struct {
	AuthType AuthType `json:"auth_type" yaml:"auth_type"`
	Token    string   `json:"token" yaml:"token"`
}

func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{AuthType: BearerType, Token: token}
}

func (b *BearerAuth) Type() AuthType { return b.AuthType }

func (b *BearerAuth) Validate() error {
	if b.Token == "" {
		return errors.New("bearer auth: token is required")
	}
	return nil
}

func (b *BearerAuth) Headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + b.Token}
}

// UnmarshalAuth decodes an auth object by its auth_type discriminator.
func UnmarshalAuth(data []byte) (Auth, error) {
	var head struct {
		AuthType AuthType `json:"auth_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.AuthType {
	case APIKeyType:
		a := &ApiKeyAuth{}
		if err := json.Unmarshal(data, a); err != nil {
			return nil, err
		}
		return a, nil
	case BearerType:
		b := &BearerAuth{}
		if err := json.Unmarshal(data, b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown auth_type %q", head.AuthType)
	}
}
