package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ErrInvalidUID is the one delivery failure that must not be retried.
var ErrInvalidUID = errors.New("player uid not found")

type DeliveryJob struct {
	OrderID     string `json:"order_id"`
	PlayerUID   string `json:"player_uid"`
	Server      string `json:"server"`
	PackageType string `json:"package_type"`
	Amount      int    `json:"amount"`

	Email    string `json:"email"`
	Password string `json:"password"`
	Pin      string `json:"pin"`
}

// Deliverer performs the external top-up. The browser automation itself lives
// in a separate agent service; this core only asks for a verdict.
type Deliverer interface {
	Deliver(ctx context.Context, job DeliveryJob) error
}

// GarenaAgent talks to the automation agent over HTTP.
type GarenaAgent struct {
	BaseURL string
	Client  *http.Client
}

func NewGarenaAgent() *GarenaAgent {
	return &GarenaAgent{
		BaseURL: os.Getenv("AUTOMATION_AGENT_URL"),
		Client:  &http.Client{Timeout: 3 * time.Minute},
	}
}

type agentVerdict struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (g *GarenaAgent) Deliver(ctx context.Context, job DeliveryJob) error {
	if g.BaseURL == "" {
		return errors.New("AUTOMATION_AGENT_URL not configured")
	}

	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/deliver", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("automation agent: %w", err)
	}
	defer resp.Body.Close()

	var verdict agentVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return fmt.Errorf("automation agent: bad response: %w", err)
	}

	if verdict.Success {
		return nil
	}
	if verdict.Status == "invalid_uid" {
		return ErrInvalidUID
	}
	if verdict.Message != "" {
		return errors.New(verdict.Message)
	}
	return fmt.Errorf("automation failed with status %q", verdict.Status)
}
