package notify

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/cmac1989/AFWorkshopMover/internal/config"
	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

// Mailer SMTP 邮件通知器：把一次提交的核对结果发给运营邮箱
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer 创建通知器，未启用时返回 nil（调用方对 nil 安全）
func NewMailer(cfg config.MailConfig) *Mailer {
	if !cfg.Enabled || cfg.Host == "" || cfg.To == "" {
		return nil
	}
	return &Mailer{cfg: cfg}
}

// SendBatchResult 发送 HTML 批次汇总
func (m *Mailer) SendBatchResult(result model.BatchResult) error {
	subject := fmt.Sprintf("花名册核对批次 %s 已提交", result.BatchID)
	body := renderBatchHTML(result)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", m.cfg.To),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send batch mail: %w", err)
	}
	return nil
}

// renderBatchHTML 生成邮件正文（薄展示层，核心结果原样转码）
func renderBatchHTML(result model.BatchResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(result.Summary)))
	b.WriteString(`<table border="1" cellpadding="4" cellspacing="0">`)
	b.WriteString("<tr><th>行</th><th>类型</th><th>明细</th></tr>")
	for _, e := range result.Entries {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(e.Row), html.EscapeString(string(e.Type)), html.EscapeString(e.Details)))
	}
	b.WriteString("</table>")
	return b.String()
}
