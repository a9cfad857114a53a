package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingField is returned when a required argument is empty.
var ErrMissingField = errors.New("missing required field")

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	if username == "" {
		return nil, missing("username")
	}
	if password == "" {
		return nil, missing("password")
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	if err := c.PostForm(ctx, "/token", form, &token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, user NewUser) (*User, error) {
	switch {
	case user.Username == "":
		return nil, missing("username")
	case user.Email == "":
		return nil, missing("email")
	case user.Password == "":
		return nil, missing("password")
	}

	var created User
	if err := c.Post(ctx, "/register", user, &created); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &created, nil
}

// CurrentUser returns the profile of the authenticated caller.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/users/me", &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

// MyLinks returns the links of the authenticated caller in backend order.
func (c *Client) MyLinks(ctx context.Context) ([]Link, error) {
	var links []Link
	if err := c.Get(ctx, "/links/me", &links); err != nil {
		return nil, fmt.Errorf("get links: %w", err)
	}
	return links, nil
}

type linkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AddLink creates a link for the authenticated caller.
func (c *Client) AddLink(ctx context.Context, title, linkURL string) (*Link, error) {
	if title == "" {
		return nil, missing("title")
	}
	if linkURL == "" {
		return nil, missing("url")
	}

	var link Link
	if err := c.Post(ctx, "/links", linkRequest{Title: title, URL: linkURL}, &link); err != nil {
		return nil, fmt.Errorf("add link: %w", err)
	}
	return &link, nil
}

// UpdateLink replaces the title and url of the link with the given id.
func (c *Client) UpdateLink(ctx context.Context, id int, title, linkURL string) (*Link, error) {
	if title == "" {
		return nil, missing("title")
	}
	if linkURL == "" {
		return nil, missing("url")
	}

	var link Link
	if err := c.Put(ctx, fmt.Sprintf("/links/%d", id), linkRequest{Title: title, URL: linkURL}, &link); err != nil {
		return nil, fmt.Errorf("update link %d: %w", id, err)
	}
	return &link, nil
}

// DeleteLink deletes the link with the given id.
func (c *Client) DeleteLink(ctx context.Context, id int) error {
	if err := c.Delete(ctx, fmt.Sprintf("/links/%d", id), nil); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

// MySettings returns the public page settings of the authenticated caller.
func (c *Client) MySettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.Get(ctx, "/settings/me", &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial update and returns the stored settings.
func (c *Client) UpdateSettings(ctx context.Context, patch SettingsPatch) (*Settings, error) {
	if patch.Empty() {
		return nil, missing("settings")
	}

	var settings Settings
	if err := c.Patch(ctx, "/settings", patch, &settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &settings, nil
}

// PublicProfile returns the public profile of username.
func (c *Client) PublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	if username == "" {
		return nil, missing("username")
	}

	var profile PublicProfile
	if err := c.Get(ctx, "/profile/"+url.PathEscape(username), &profile); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", username, err)
	}
	return &profile, nil
}

// PublicSettings returns the public settings of username.
func (c *Client) PublicSettings(ctx context.Context, username string) (*Settings, error) {
	if username == "" {
		return nil, missing("username")
	}

	var settings Settings
	if err := c.Get(ctx, "/setting/"+url.PathEscape(username), &settings); err != nil {
		return nil, fmt.Errorf("get settings %s: %w", username, err)
	}
	return &settings, nil
}
