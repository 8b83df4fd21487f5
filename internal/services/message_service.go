package services

import (
	"context"
	"errors"
	"time"

	"socialgram/internal/models"
	"socialgram/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound = errors.New("message group not found")
	ErrAlreadyMember = errors.New("user is already a member of the group")
	ErrNotMember     = errors.New("user is not a member of the group")
	ErrSelfChat      = errors.New("cannot open a chat with yourself")
)

// GroupInfo is one entry in a user's group listing.
type GroupInfo struct {
	GroupID   string `json:"groupID"`
	GroupName string `json:"groupName"`
}

// MessageView is one message with its sender resolved at read time.
type MessageView struct {
	Time       time.Time `json:"time"`
	Text       string    `json:"text"`
	SenderID   string    `json:"senderID"`
	SenderName string    `json:"senderName"`
}

// MessageService handles chats, groups, membership, and messages
type MessageService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(db *gorm.DB, logger *zap.Logger) *MessageService {
	return &MessageService{db: db, logger: logger}
}

// FindChat looks up the direct chat between two users: a group with
// exactly two members containing both. The lookup is symmetric in its
// arguments. found=false is a normal outcome, not an error. A chat is
// always between two distinct users; with equal arguments the two
// membership joins would bind the same row and match any two-member
// group containing the caller, so that case is rejected up front.
func (s *MessageService) FindChat(ctx context.Context, userA, userB string) (groupID string, found bool, err error) {
	if userA == userB {
		return "", false, ErrSelfChat
	}

	var ids []string
	err = s.db.WithContext(ctx).Raw(`
		SELECT g.id
		FROM message_groups g
		JOIN message_group_members ma ON ma.group_id = g.id AND ma.user_id = ?
		JOIN message_group_members mb ON mb.group_id = g.id AND mb.user_id = ?
		WHERE (SELECT COUNT(*) FROM message_group_members m WHERE m.group_id = g.id) = 2`,
		userA, userB).Scan(&ids).Error
	if err != nil {
		return "", false, err
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

// CreateChat creates a two-person chat: the group row plus both membership
// rows commit in one transaction, so a failure leaves no partial group.
func (s *MessageService) CreateChat(ctx context.Context, userA, userB string) (string, error) {
	if userA == userB {
		return "", ErrSelfChat
	}

	var names []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", []string{userA, userB}).
		Order("username").
		Pluck("username", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) != 2 {
		return "", ErrUserNotFound
	}

	group := models.MessageGroup{
		ID:   utils.GenerateID(),
		Name: names[0] + " " + names[1],
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		for _, userID := range []string{userA, userB} {
			member := models.MessageGroupMember{GroupID: group.ID, UserID: userID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("chat created",
		zap.String("group_id", group.ID),
		zap.Strings("members", []string{userA, userB}))
	return group.ID, nil
}

// CreateGroup creates a named group with the given members, all in one
// transaction. Duplicate member IDs are collapsed.
func (s *MessageService) CreateGroup(ctx context.Context, name string, memberIDs []string) (string, error) {
	seen := make(map[string]bool, len(memberIDs))
	unique := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) < 2 {
		return "", errors.New("a message group needs at least two members")
	}

	group := models.MessageGroup{ID: utils.GenerateID(), Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		for _, userID := range unique {
			member := models.MessageGroupMember{GroupID: group.ID, UserID: userID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("message group created",
		zap.String("group_id", group.ID),
		zap.Int("members", len(unique)))
	return group.ID, nil
}

// ListGroups lists the groups a user belongs to.
func (s *MessageService) ListGroups(ctx context.Context, userID string) ([]GroupInfo, error) {
	var groups []GroupInfo
	err := s.db.WithContext(ctx).Table("message_groups").
		Select("message_groups.id AS group_id, message_groups.name AS group_name").
		Joins("JOIN message_group_members ON message_group_members.group_id = message_groups.id").
		Where("message_group_members.user_id = ?", userID).
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupName returns a group's display name.
func (s *MessageService) GroupName(ctx context.Context, groupID string) (string, error) {
	var group models.MessageGroup
	err := s.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrGroupNotFound
	}
	if err != nil {
		return "", err
	}
	return group.Name, nil
}

// IsMember reports whether a user belongs to a group.
func (s *MessageService) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MessageGroupMember{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember adds a user to a group. Adding an existing member is rejected
// rather than silently duplicated.
func (s *MessageService) AddMember(ctx context.Context, groupID, userID string) error {
	var groups int64
	err := s.db.WithContext(ctx).Model(&models.MessageGroup{}).
		Where("id = ?", groupID).Count(&groups).Error
	if err != nil {
		return err
	}
	if groups == 0 {
		return ErrGroupNotFound
	}

	member, err := s.IsMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}

	return s.db.WithContext(ctx).Create(&models.MessageGroupMember{
		GroupID: groupID,
		UserID:  userID,
	}).Error
}

// SendMessage appends a message to a group. The timestamp is assigned by
// the server; a client-supplied time is never trusted. Only members may
// send.
func (s *MessageService) SendMessage(ctx context.Context, groupID, senderID, text string) (time.Time, error) {
	member, err := s.IsMember(ctx, senderID, groupID)
	if err != nil {
		return time.Time{}, err
	}
	if !member {
		return time.Time{}, ErrNotMember
	}

	message := models.Message{
		ID:       uuid.NewString(),
		GroupID:  groupID,
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return time.Time{}, err
	}
	return message.SentAt, nil
}

// GetMessages returns a group's full history in ascending time order with
// sender display names resolved at read time.
func (s *MessageService) GetMessages(ctx context.Context, groupID string) ([]MessageView, error) {
	var rows []struct {
		SentAt      time.Time
		Text        string
		SenderID    string
		Username    string
		DisplayName *string
	}
	err := s.db.WithContext(ctx).Table("messages").
		Select("messages.sent_at, messages.text, messages.sender_id, users.username, users.display_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.group_id = ?", groupID).
		Order("messages.sent_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]MessageView, 0, len(rows))
	for _, row := range rows {
		name := row.Username
		if row.DisplayName != nil && *row.DisplayName != "" {
			name = *row.DisplayName
		}
		messages = append(messages, MessageView{
			Time:       row.SentAt,
			Text:       row.Text,
			SenderID:   row.SenderID,
			SenderName: name,
		})
	}
	return messages, nil
}
