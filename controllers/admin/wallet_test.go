package admin

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/users/:id/wallet/recharge", Recharge)
	app.Post("/users/:id/wallet/redeem", Redeem)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestRedeemRejectsAmountOverCap(t *testing.T) {
	app := walletTestApp()

	// ₹6,000 against the ₹5,000 single-transaction cap.
	status, body := postJSON(t, app, "/users/u1/wallet/redeem", fiber.Map{
		"amount_paisa": 600000,
		"reason":       "correction for failed topup",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "AMOUNT_EXCEEDS_REDEEM_CAP", body["message"])
}

func TestWalletAdjustRejectsShortReason(t *testing.T) {
	app := walletTestApp()

	for _, path := range []string{"/users/u1/wallet/recharge", "/users/u1/wallet/redeem"} {
		status, body := postJSON(t, app, path, fiber.Map{
			"amount_paisa": 1000,
			"reason":       "ok",
		})
		assert.Equal(t, fiber.StatusBadRequest, status, path)
		assert.Equal(t, "REASON_TOO_SHORT", body["message"], path)
	}
}

func TestWalletAdjustRequiresPositiveAmount(t *testing.T) {
	app := walletTestApp()

	for _, amount := range []int64{0, -500} {
		status, body := postJSON(t, app, "/users/u1/wallet/redeem", fiber.Map{
			"amount_paisa": amount,
			"reason":       "manual adjustment",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "AMOUNT_AND_REASON_REQUIRED", body["message"])
	}
}
