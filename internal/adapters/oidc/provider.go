package oidc

// Package oidc provides the OIDC/OAuth adapter for the portal's identity provider.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/ports"
	"golang.org/x/oauth2"
)

// Provider implements the AuthProvider interface using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	logoutURL  string
	httpClient *http.Client

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	LogoutURL    string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := &Provider{
		logoutURL:  config.LogoutURL,
		httpClient: httpClient,
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	// Configure OAuth2 using discovered endpoints
	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       strings.Fields(config.Scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	// Generate cryptographically secure state and nonce
	state, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}

	nonce, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	// Build auth URL with OIDC parameters
	// Note: Don't override redirect_uri here as it should match the configured RedirectURL exactly
	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)

	return authURL, state, nonce, nil
}

func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.ExchangeResult, error) {
	if in.Code == "" {
		return ports.ExchangeResult{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return ports.ExchangeResult{}, errors.New("state is required")
	}
	if in.Nonce == "" {
		return ports.ExchangeResult{}, errors.New("nonce is required")
	}

	// Exchange code for token
	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return ports.ExchangeResult{}, fmt.Errorf("exchange code for token: %w", err)
	}

	// Extract from ID token when openid is present
	fields, err := p.extractFromIDToken(ctx, token, in.Nonce)
	if err != nil {
		return ports.ExchangeResult{}, fmt.Errorf("extract id_token: %w", err)
	}

	// Fill missing fields from UserInfo
	if fields.email == "" || fields.userID == "" {
		if fillErr := p.fillFromUserInfo(ctx, token.AccessToken, &fields); fillErr != nil {
			return ports.ExchangeResult{}, fmt.Errorf("get user info: %w", fillErr)
		}
	}

	expiresAt := time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	identity := domainauth.Identity{
		UserID:    fields.userID,
		FirstName: fields.givenName,
		LastName:  fields.familyName,
		Email:     fields.email,
		ImageURL:  fields.picture,
		Metadata:  fields.metadata,
		ExpiresAt: expiresAt,
	}
	return ports.ExchangeResult{Identity: identity, AccessToken: token.AccessToken}, nil
}

// UserInfo represents the user information from the OIDC userinfo endpoint,
// including the portal's custom metadata claims.
type UserInfo struct {
	Subject            string `json:"sub"`
	GivenName          string `json:"given_name"`
	FamilyName         string `json:"family_name"`
	Email              string `json:"email"`
	Picture            string `json:"picture"`
	Role               string `json:"role"`
	Institution        string `json:"institution"`
	Department         string `json:"department"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

func (p *Provider) getUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	var userInfo UserInfo
	if claimsErr := ui.Claims(&userInfo); claimsErr != nil {
		return nil, fmt.Errorf("decode user info: %w", claimsErr)
	}
	return &userInfo, nil
}

// internal helper types and functions to keep Exchange small

type idFields struct {
	userID     string
	email      string
	givenName  string
	familyName string
	picture    string
	metadata   domainauth.Metadata
}

func (p *Provider) extractFromIDToken(ctx context.Context, tok *oauth2.Token, expectedNonce string) (idFields, error) {
	var f idFields
	if !p.hasOpenIDScope() {
		return f, nil
	}
	rawID, err := getIDTokenFromToken(tok)
	if err != nil {
		return f, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return f, fmt.Errorf("verify id_token: %w", err)
	}
	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return f, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if expectedNonce != "" && claims.Nonce != expectedNonce {
		return f, errors.New("invalid nonce")
	}
	f = mapIDTokenClaims(claims)
	return f, nil
}

func (p *Provider) fillFromUserInfo(ctx context.Context, accessToken string, f *idFields) error {
	ui, err := p.getUserInfo(ctx, accessToken)
	if err != nil {
		return err
	}
	fillFromUserInfoClaims(f, *ui)
	return nil
}

// idTokenClaims is the ID token claim shape the portal's identity provider
// issues: standard OIDC profile claims plus the custom metadata the provider
// stores per user.
type idTokenClaims struct {
	Sub                string `json:"sub"`
	GivenName          string `json:"given_name"`
	FamilyName         string `json:"family_name"`
	Email              string `json:"email"`
	Picture            string `json:"picture"`
	Role               string `json:"role"`
	Institution        string `json:"institution"`
	Department         string `json:"department"`
	OnboardingComplete bool   `json:"onboarding_complete"`
	ExpiresAt          int64  `json:"exp"`
	Nonce              string `json:"nonce"`
}

// mapIDTokenClaims maps raw id token claims into idFields.
func mapIDTokenClaims(c idTokenClaims) idFields {
	return idFields{
		userID:     c.Sub,
		email:      c.Email,
		givenName:  c.GivenName,
		familyName: c.FamilyName,
		picture:    c.Picture,
		metadata: domainauth.Metadata{
			Role:               c.Role,
			Institution:        c.Institution,
			Department:         c.Department,
			OnboardingComplete: c.OnboardingComplete,
		},
	}
}

// fillFromUserInfoClaims fills missing fields from a UserInfo payload.
func fillFromUserInfoClaims(f *idFields, ui UserInfo) {
	if f.userID == "" {
		f.userID = ui.Subject
	}
	if f.email == "" {
		f.email = ui.Email
	}
	if f.givenName == "" {
		f.givenName = ui.GivenName
	}
	if f.familyName == "" {
		f.familyName = ui.FamilyName
	}
	if f.picture == "" {
		f.picture = ui.Picture
	}
	if f.metadata.Role == "" {
		f.metadata.Role = ui.Role
	}
	if f.metadata.Institution == "" {
		f.metadata.Institution = ui.Institution
	}
	if f.metadata.Department == "" {
		f.metadata.Department = ui.Department
	}
	if !f.metadata.OnboardingComplete {
		f.metadata.OnboardingComplete = ui.OnboardingComplete
	}
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least 'length' base64 URL-safe chars
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}

// hasOpenIDScope reports whether the configured scopes include "openid".
func (p *Provider) hasOpenIDScope() bool {
	for _, sc := range p.config.Scopes {
		if sc == "openid" {
			return true
		}
	}
	return false
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
