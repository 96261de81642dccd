package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zupsms_backend/internals/features/sms/templates/model"
)

var dbSeq int

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:template_ctl_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// text[] n'existe pas côté sqlite: DDL à la main, pq.StringArray se
	// sérialise en "{a,b}" dans une colonne text
	ddl := `CREATE TABLE message_templates (
		message_template_id         text PRIMARY KEY,
		message_template_name       text NOT NULL,
		message_template_content    text NOT NULL,
		message_template_variables  text,
		message_template_is_default numeric NOT NULL,
		message_template_created_at datetime,
		message_template_updated_at datetime
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	app := fiber.New()
	ctl := NewMessageTemplateController(db, nil)
	g := app.Group("/api/templates")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func createTemplate(t *testing.T, app *fiber.App, name, content string, isDefault bool) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/templates/", map[string]any{
		"name":      name,
		"content":   content,
		"isDefault": isDefault,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: expected 201, got %d (%v)", name, resp.StatusCode, body)
	}
	data, _ := body["data"].(map[string]any)
	return data
}

func defaultCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	db.Model(&model.MessageTemplateModel{}).
		Where("message_template_is_default = ?", true).Count(&count)
	return count
}

func TestCreateExtractsVariables(t *testing.T) {
	app, _ := newTestApp(t)

	data := createTemplate(t, app, "Rappel", "Bonjour {{prenom}}, {{jour}} à {{heure}}", false)
	vars, _ := data["variables"].([]any)
	if len(vars) != 3 || vars[0] != "prenom" || vars[1] != "jour" || vars[2] != "heure" {
		t.Fatalf("unexpected variables: %v", vars)
	}
}

func TestSingleDefaultInvariant(t *testing.T) {
	app, db := newTestApp(t)

	first := createTemplate(t, app, "Premier", "a {{jour}}", true)
	if defaultCount(t, db) != 1 {
		t.Fatal("expected one default")
	}

	// en créer un second par défaut doit détrôner le premier
	second := createTemplate(t, app, "Second", "b {{heure}}", true)
	if defaultCount(t, db) != 1 {
		t.Fatalf("expected one default after second create, got %d", defaultCount(t, db))
	}

	var firstBack model.MessageTemplateModel
	db.First(&firstBack, "message_template_id = ?", first["id"])
	if firstBack.MessageTemplateIsDefault {
		t.Fatal("first template must have lost default")
	}

	// repasser le premier en défaut via update
	resp, _ := doJSON(t, app, http.MethodPatch, "/api/templates/"+first["id"].(string), map[string]any{
		"isDefault": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if defaultCount(t, db) != 1 {
		t.Fatalf("expected one default after update, got %d", defaultCount(t, db))
	}
	var secondBack model.MessageTemplateModel
	db.First(&secondBack, "message_template_id = ?", second["id"])
	if secondBack.MessageTemplateIsDefault {
		t.Fatal("second template must have lost default")
	}
}

func TestUpdateContentReextractsVariables(t *testing.T) {
	app, _ := newTestApp(t)

	created := createTemplate(t, app, "Rappel", "avec {{jour}}", false)
	resp, body := doJSON(t, app, http.MethodPatch, "/api/templates/"+created["id"].(string), map[string]any{
		"content": "maintenant {{heure}} et {{prenom}}",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, _ := body["data"].(map[string]any)
	vars, _ := data["variables"].([]any)
	if len(vars) != 2 || vars[0] != "heure" || vars[1] != "prenom" {
		t.Fatalf("expected re-extracted variables, got %v", vars)
	}
}

func TestDeleteTemplate(t *testing.T) {
	app, db := newTestApp(t)

	created := createTemplate(t, app, "À jeter", "x", false)
	resp, _ := doJSON(t, app, http.MethodDelete, "/api/templates/"+created["id"].(string), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var count int64
	db.Model(&model.MessageTemplateModel{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/templates/"+created["id"].(string), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.StatusCode)
	}
}

func TestListDefaultFirst(t *testing.T) {
	app, _ := newTestApp(t)

	createTemplate(t, app, "Ancien", "a", false)
	createTemplate(t, app, "Défaut", "b", true)
	createTemplate(t, app, "Récent", "c", false)

	resp, body := doJSON(t, app, http.MethodGet, "/api/templates/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, _ := body["data"].([]any)
	if len(data) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(data))
	}
	first, _ := data[0].(map[string]any)
	if first["name"] != "Défaut" {
		t.Fatalf("expected default first, got %v", first["name"])
	}
}
