package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/wneessen/go-mail"
)

// ErrUnsupportedType 表示队列中出现了不认识的邮件类型
var ErrUnsupportedType = errors.New("unsupported mail type")

type welcomeTemplateData struct {
	domain.WelcomeMailData
	CompanyName string
}

// Composer 把队列中的消息渲染为可以直接发送的邮件
type Composer struct {
	from        string
	companyName string
	welcome     *template.Template
}

func NewComposer(templateDir, from, companyName string) (*Composer, error) {
	welcome, err := template.ParseFiles(filepath.Join(templateDir, "welcome_employee.html"))
	if err != nil {
		return nil, err
	}

	return &Composer{
		from:        from,
		companyName: companyName,
		welcome:     welcome,
	}, nil
}

// Compose 解析消息体并生成邮件。返回的错误都意味着消息无法处理，不应重新入队。
func (c *Composer) Compose(body []byte) (*mail.Msg, error) {
	var payload struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(payload.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	// 根据邮件类型解析数据
	switch payload.Type {
	case domain.MailTypeWelcomeEmployee:
		var data domain.WelcomeMailData
		if err := json.Unmarshal(payload.Data, &data); err != nil {
			return nil, fmt.Errorf("邮件数据反序列化失败: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(c.welcome, welcomeTemplateData{WelcomeMailData: data, CompanyName: c.companyName}); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		m.Subject(fmt.Sprintf("Welcome to %s", c.companyName))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, payload.Type)
	}

	return m, nil
}
