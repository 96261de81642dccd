// file: internals/features/sms/service/sweego_service.go
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SweegoConfig est construit une fois au démarrage (main) et passé au
// service: pas d'état global mutable, pas de lecture lazy d'ENV.
type SweegoConfig struct {
	APIKey            string
	SenderID          string
	BaseURL           string
	DefaultTemplateID string
}

type SweegoService struct {
	cfg    SweegoConfig
	client *http.Client
}

// SendResult: réponse normalisée de la passerelle. Success=false couvre
// aussi bien un refus API qu'une erreur réseau/parse: rien ne remonte en
// tant qu'error au-delà de cette frontière.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

type AccountInfo struct {
	Configured bool   `json:"configured"`
	Credits    string `json:"credits,omitempty"`
	Status     string `json:"status,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

func NewSweegoService(cfg SweegoConfig) *SweegoService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sweego.io"
	}
	return &SweegoService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SweegoService) Configured() bool { return s.cfg.APIKey != "" }

func (s *SweegoService) DefaultTemplateID() string { return s.cfg.DefaultTemplateID }

// SendTemplate envoie un SMS transactionnel via un template hébergé chez
// Sweego. Variables attendues par le template de production: jour, heure.
func (s *SweegoService) SendTemplate(phone, templateID string, variables map[string]string) SendResult {
	if s.cfg.APIKey == "" {
		return SendResult{Success: false, Error: "Sweego API key not configured"}
	}
	if templateID == "" {
		templateID = s.cfg.DefaultTemplateID
	}
	if templateID == "" {
		return SendResult{Success: false, Error: "No Sweego template id configured"}
	}

	body := map[string]any{
		"channel":       "sms",
		"provider":      "sweego",
		"template-id":   templateID,
		"campaign-type": "transac",
		"recipients": []map[string]string{
			{"num": strings.TrimSpace(phone), "region": "FR"},
		},
		"variables": variables,
		"bat":       false,
		// identifiant local, uniquement pour le traçage côté Sweego
		"campaign-id": fmt.Sprintf("campaign-%d", time.Now().UnixMilli()),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.BaseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Api-Key", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		data = map[string]any{"error": "Invalid response from server"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SendResult{Success: false, Error: sweegoErrorMessage(resp.StatusCode, data)}
	}

	return SendResult{
		Success:   true,
		MessageID: firstString(data, "messageId", "id", "message_id"),
		Status:    firstStringDefault(data, "sent", "status"),
	}
}

// Account interroge l'API compte (crédits restants) pour l'écran SMS du
// dashboard. Best-effort, jamais bloquant.
func (s *SweegoService) Account() AccountInfo {
	if s.cfg.APIKey == "" {
		return AccountInfo{
			Configured: false,
			Error:      "SWEEGO_API_KEY not configured",
		}
	}

	req, err := http.NewRequest(http.MethodGet, s.cfg.BaseURL+"/account", nil)
	if err != nil {
		return AccountInfo{Configured: true, Error: err.Error()}
	}
	req.Header.Set("Api-Key", s.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return AccountInfo{Configured: true, Error: "Failed to connect to Sweego API"}
	}
	defer resp.Body.Close()

	var data map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return AccountInfo{Configured: true, Error: sweegoErrorMessage(resp.StatusCode, data)}
	}

	return AccountInfo{
		Configured: true,
		Credits:    firstStringDefault(data, "Unknown", "credits", "balance"),
		Status:     firstStringDefault(data, "active", "status"),
		SenderID:   s.cfg.SenderID,
	}
}

func sweegoErrorMessage(status int, data map[string]any) string {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication failed. Please check your SWEEGO_API_KEY"
	case http.StatusBadRequest:
		if msg := firstString(data, "message", "detail"); msg != "" {
			return "Bad request: " + msg
		}
		return "Bad request: Invalid parameters"
	default:
		if msg := firstString(data, "detail", "message", "error"); msg != "" {
			return msg
		}
		return fmt.Sprintf("Sweego API error (status %d)", status)
	}
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := data[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func firstStringDefault(data map[string]any, def string, keys ...string) string {
	if s := firstString(data, keys...); s != "" {
		return s
	}
	return def
}
