package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"license-hub/logic/auth"
	"license-hub/storage/sqlstore"
)

var (
	ErrInvalidLogin   = errors.New("invalid login")
	ErrInvalidSession = errors.New("invalid or expired session")
)

// AuthService 用户名 + bcrypt 密码校验，登录成功后签发会话令牌
type AuthService struct {
	users *sqlstore.UserRepo
	ttl   time.Duration
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewAuthService(users *sqlstore.UserRepo, ttl time.Duration, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		users: users,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Login 校验失败统一返回 ErrInvalidLogin，不区分用户不存在还是密码错误
func (s *AuthService) Login(ctx context.Context, username, password string) (*sqlstore.Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sqlstore.ErrNotFound) {
		s.log.WithField("username", username).Warn("login failed: unknown user")
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		s.log.WithField("username", username).Warn("login failed: wrong password")
		return nil, ErrInvalidLogin
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	session := &sqlstore.Session{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.log.WithField("username", username).Info("user logged in")
	return session, nil
}

// Authenticate 令牌 -> 会话；过期的会话顺手删除
func (s *AuthService) Authenticate(ctx context.Context, token string) (*sqlstore.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	session, err := s.users.GetSession(ctx, token)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.users.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.users.DeleteSession(ctx, token)
}

// EnsureUser 用户不存在时创建（启动时写入初始管理员）
func (s *AuthService) EnsureUser(ctx context.Context, username, password, email string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sqlstore.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password failed: %w", err)
	}
	if err := s.users.Create(ctx, &sqlstore.User{Username: username, PasswordHash: hash, Email: email}); err != nil {
		return false, fmt.Errorf("create user failed: %w", err)
	}
	s.log.WithField("username", username).Info("user created")
	return true, nil
}

// PurgeSessions 清理过期会话，供定时任务调用
func (s *AuthService) PurgeSessions(ctx context.Context) (int64, error) {
	return s.users.DeleteExpiredSessions(ctx, s.now())
}
