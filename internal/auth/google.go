package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"jobtailor/internal/api"
	"jobtailor/internal/config"
	"jobtailor/internal/dto"
)

const loginTimeout = 5 * time.Minute

// Google's implicit flow returns tokens in the URL fragment, which never
// reaches a server. The callback page reposts the fragment parameters so the
// process can exchange them with the backend for its own token.
const callbackPage = `<!doctype html>
<html>
<body>
<p>Completing sign-in…</p>
<script>
const params = new URLSearchParams(window.location.hash.slice(1));
fetch("/complete", {
  method: "POST",
  headers: { "Content-Type": "application/json" },
  body: JSON.stringify({
    state: params.get("state"),
    id_token: params.get("id_token"),
    access_token: params.get("access_token"),
  }),
}).then(() => { document.body.innerText = "Signed in. You can close this window."; })
  .catch(() => { document.body.innerText = "Sign-in failed. Check the terminal."; });
</script>
</body>
</html>`

type googleResult struct {
	auth *dto.AuthResponse
	err  error
}

// GoogleLogin runs the loopback sign-in handoff: serve a local callback,
// send the user to Google, exchange the returned tokens for a backend token.
type GoogleLogin struct {
	api *api.Client
	cfg *config.GoogleConfig
}

func NewGoogleLogin(client *api.Client, cfg *config.GoogleConfig) *GoogleLogin {
	return &GoogleLogin{api: client, cfg: cfg}
}

func (g *GoogleLogin) Run(ctx context.Context) (*dto.AuthResponse, error) {
	if g.cfg.ClientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID not set")
	}

	state := uuid.NewString()
	results := make(chan googleResult, 1)

	app := fiber.New(fiber.Config{
		AppName:               config.LoadAppConfig().Name,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/callback", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(callbackPage)
	})

	app.Post("/complete", func(c *fiber.Ctx) error {
		var req struct {
			State       string `json:"state"`
			IDToken     string `json:"id_token"`
			AccessToken string `json:"access_token"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		if req.State != state {
			results <- googleResult{err: errors.New("oauth state mismatch")}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "state mismatch"})
		}
		auth, err := g.api.GoogleSignIn(c.Context(), req.IDToken, req.AccessToken)
		if err != nil {
			results <- googleResult{err: err}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		results <- googleResult{auth: auth}
		return c.JSON(fiber.Map{"success": true})
	})

	go func() {
		if err := app.Listen(g.cfg.CallbackAddr); err != nil {
			results <- googleResult{err: fmt.Errorf("callback server: %w", err)}
		}
	}()
	defer func() {
		if err := app.Shutdown(); err != nil {
			log.Printf("callback server shutdown: %v", err)
		}
	}()

	log.Printf("Open this URL in your browser to sign in:\n\n  %s\n", g.authURL(state))

	select {
	case res := <-results:
		return res.auth, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(loginTimeout):
		return nil, errors.New("timed out waiting for the browser sign-in")
	}
}

func (g *GoogleLogin) authURL(state string) string {
	query := url.Values{}
	query.Set("client_id", g.cfg.ClientID)
	query.Set("redirect_uri", "http://"+g.cfg.CallbackAddr+"/callback")
	query.Set("response_type", "token id_token")
	query.Set("scope", "openid email profile")
	query.Set("state", state)
	query.Set("nonce", uuid.NewString())
	return "https://accounts.google.com/o/oauth2/v2/auth?" + query.Encode()
}
