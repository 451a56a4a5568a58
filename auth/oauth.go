package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/rdx"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the minimal identity fetched from any OAuth provider.
type Profile struct {
	Email  string
	Name   string
	Avatar string
}

// Provider exchanges an authorization code for a user profile. Each
// third-party identity provider is one interchangeable implementation.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (Profile, error)
}

type oauthProvider struct {
	name       string
	config     *oauth2.Config
	profileURL string
	parse      func(body map[string]any) Profile
}

func (p *oauthProvider) Name() string { return p.name }

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *oauthProvider) FetchProfile(ctx context.Context, code string) (Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("code exchange failed: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.profileURL)
	if err != nil {
		return Profile{}, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("profile fetch returned %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("profile decode failed: %w", err)
	}

	profile := p.parse(body)
	if profile.Email == "" {
		return Profile{}, errors.New("provider returned no email")
	}
	return profile, nil
}

var providers = map[string]Provider{}

func init() {
	base := os.Getenv("OAUTH_CALLBACK_BASE")
	if base == "" {
		base = "http://localhost:8080"
	}

	str := func(m map[string]any, key string) string {
		s, _ := m[key].(string)
		return s
	}

	providers["google"] = &oauthProvider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  base + "/api/v1/auth/oauth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		profileURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		parse: func(m map[string]any) Profile {
			return Profile{Email: str(m, "email"), Name: str(m, "name"), Avatar: str(m, "picture")}
		},
	}

	providers["github"] = &oauthProvider{
		name: "github",
		config: &oauth2.Config{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			RedirectURL:  base + "/api/v1/auth/oauth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		profileURL: "https://api.github.com/user",
		parse: func(m map[string]any) Profile {
			return Profile{Email: str(m, "email"), Name: str(m, "name"), Avatar: str(m, "avatar_url")}
		},
	}

	providers["facebook"] = &oauthProvider{
		name: "facebook",
		config: &oauth2.Config{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			RedirectURL:  base + "/api/v1/auth/oauth/facebook/callback",
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		profileURL: "https://graph.facebook.com/me?fields=id,name,email,picture",
		parse: func(m map[string]any) Profile {
			return Profile{Email: str(m, "email"), Name: str(m, "name")}
		},
	}
}

// OAuthRedirect starts the authorization-code flow for :provider.
func OAuthRedirect(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	provider, ok := providers[ps.ByName("provider")]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown provider")
		return
	}

	state := utils.GenerateRandomString(24)
	if err := rdx.RdxSetWithTTL("oauth:state:"+state, provider.Name(), 10*time.Minute); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start OAuth flow")
		return
	}

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallback finishes the flow: verifies state, exchanges the code for a
// profile, upserts the account, and issues this system's own session.
func OAuthCallback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	provider, ok := providers[ps.ByName("provider")]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown provider")
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing code or state")
		return
	}

	stored, err := rdx.RdxGet("oauth:state:" + state)
	if err != nil || stored != provider.Name() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	rdx.RdxDel("oauth:state:" + state)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	profile, err := provider.FetchProfile(ctx, code)
	if err != nil {
		log.Printf("OAuthCallback: %s: %v", provider.Name(), err)
		utils.RespondWithError(w, http.StatusBadGateway, "OAuth exchange failed")
		return
	}

	email := utils.NormalizeEmail(profile.Email)
	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user = models.User{
			UserID:        "u" + utils.GenerateRandomString(10),
			Name:          profile.Name,
			Email:         email,
			Role:          []string{"user"},
			Provider:      provider.Name(),
			Avatar:        profile.Avatar,
			EmailVerified: true,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	issueSession(w, ctx, user)
}
