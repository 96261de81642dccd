package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MessageTemplateModel: bibliothèque locale de modèles pour les
// coordinateurs. Aucun effet sur le dispatch (le template de production vit
// chez Sweego, référencé par settings). Au plus un défaut à la fois.
type MessageTemplateModel struct {
	MessageTemplateID        uuid.UUID      `gorm:"column:message_template_id;type:uuid;primaryKey" json:"message_template_id"`
	MessageTemplateName      string         `gorm:"column:message_template_name;type:varchar(160);not null" json:"message_template_name"`
	MessageTemplateContent   string         `gorm:"column:message_template_content;type:text;not null" json:"message_template_content"`
	MessageTemplateVariables pq.StringArray `gorm:"column:message_template_variables;type:text[]" json:"message_template_variables"`
	MessageTemplateIsDefault bool           `gorm:"column:message_template_is_default;not null" json:"message_template_is_default"`
	MessageTemplateCreatedAt time.Time      `gorm:"column:message_template_created_at;autoCreateTime" json:"message_template_created_at"`
	MessageTemplateUpdatedAt time.Time      `gorm:"column:message_template_updated_at;autoUpdateTime" json:"message_template_updated_at"`
}

func (MessageTemplateModel) TableName() string { return "message_templates" }

func (m *MessageTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageTemplateID == uuid.Nil {
		m.MessageTemplateID = uuid.New()
	}
	return nil
}

// placeholders {{jour}} ou {heure}
var placeholderRe = regexp.MustCompile(`\{{1,2}([a-zA-Z_][a-zA-Z0-9_]*)\}{1,2}`)

// ExtractVariables liste les noms de placeholders du contenu, dédupliqués,
// dans l'ordre d'apparition.
func ExtractVariables(content string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
