package service

import (
	"fmt"
	"log"
	"net/smtp"
)

// ==================== MailService 邮件服务 ====================

// MailConfig SMTP 配置
type MailConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

// MailService 外发邮件（注册确认、下单通知）。
// 未配置 SMTP 时降级为仅打日志，本地开发和测试都走这条路
type MailService struct {
	cfg *MailConfig
}

// NewMailService 创建邮件服务
func NewMailService(cfg *MailConfig) *MailService {
	return &MailService{cfg: cfg}
}

func (s *MailService) enabled() bool {
	return s.cfg != nil && s.cfg.Host != ""
}

func (s *MailService) send(to, subject, body string) error {
	if !s.enabled() {
		log.Printf("[Mail] 未配置 SMTP，仅记录: to=%s subject=%q body=%q", to, subject, body)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body))
	addr := s.cfg.Host + ":" + s.cfg.Port

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}

// SendConfirmToken 注册确认令牌
func (s *MailService) SendConfirmToken(email, token string) error {
	return s.send(email, "Email confirmation token",
		fmt.Sprintf("Your confirmation token: %s", token))
}

// SendOrderPlaced 下单成功通知
func (s *MailService) SendOrderPlaced(email string, orderID int64) error {
	return s.send(email, "Order status update",
		fmt.Sprintf("Order %d has been placed and is being processed", orderID))
}
