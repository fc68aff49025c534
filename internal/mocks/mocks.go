package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"collablearn/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, email, passwordHash, name string) (models.User, error) {
	args := m.Called(ctx, email, passwordHash, name)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var list []models.User
	if val := args.Get(0); val != nil {
		list = val.([]models.User)
	}
	return list, args.Error(1)
}

func (m *UserRepositoryMock) UpdateProfile(ctx context.Context, userID int, name, bio, avatarURL string) (models.User, error) {
	args := m.Called(ctx, userID, name, bio, avatarURL)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepositoryMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type SkillRepositoryMock struct {
	mock.Mock
}

func (m *SkillRepositoryMock) CreateSkill(ctx context.Context, ownerID int, title, description, category string) (models.Skill, error) {
	args := m.Called(ctx, ownerID, title, description, category)
	var skill models.Skill
	if val := args.Get(0); val != nil {
		skill = val.(models.Skill)
	}
	return skill, args.Error(1)
}

func (m *SkillRepositoryMock) GetSkill(ctx context.Context, skillID int) (models.Skill, error) {
	args := m.Called(ctx, skillID)
	var skill models.Skill
	if val := args.Get(0); val != nil {
		skill = val.(models.Skill)
	}
	return skill, args.Error(1)
}

func (m *SkillRepositoryMock) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	args := m.Called(ctx, category)
	var list []models.Skill
	if val := args.Get(0); val != nil {
		list = val.([]models.Skill)
	}
	return list, args.Error(1)
}

func (m *SkillRepositoryMock) DeleteSkill(ctx context.Context, skillID int) error {
	args := m.Called(ctx, skillID)
	return args.Error(0)
}

func (m *SkillRepositoryMock) CountSkills(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) CreatePost(ctx context.Context, authorID int, title, body string) (models.Post, error) {
	args := m.Called(ctx, authorID, title, body)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) GetPost(ctx context.Context, postID int) (models.Post, error) {
	args := m.Called(ctx, postID)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	var list []models.Post
	if val := args.Get(0); val != nil {
		list = val.([]models.Post)
	}
	return list, args.Error(1)
}

func (m *PostRepositoryMock) DeletePost(ctx context.Context, postID int) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *PostRepositoryMock) CountPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, chatID string, senderID int, content string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetChatMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var list []models.Message
	if val := args.Get(0); val != nil {
		list = val.([]models.Message)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) ListChatsForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.ChatSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatSummary)
	}
	return list, args.Error(1)
}

type BookingRepositoryMock struct {
	mock.Mock
}

func (m *BookingRepositoryMock) CreateBooking(ctx context.Context, instructorID, studentID, skillID int, date time.Time, duration int, notes string, sessions int) (models.Booking, error) {
	args := m.Called(ctx, instructorID, studentID, skillID, date, duration, notes, sessions)
	var booking models.Booking
	if val := args.Get(0); val != nil {
		booking = val.(models.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepositoryMock) GetBooking(ctx context.Context, bookingID int) (models.Booking, error) {
	args := m.Called(ctx, bookingID)
	var booking models.Booking
	if val := args.Get(0); val != nil {
		booking = val.(models.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepositoryMock) ListBookingsForUser(ctx context.Context, userID int) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	var list []models.Booking
	if val := args.Get(0); val != nil {
		list = val.([]models.Booking)
	}
	return list, args.Error(1)
}

func (m *BookingRepositoryMock) ListBookingsForSkillAndUser(ctx context.Context, skillID, userID int) ([]models.Booking, error) {
	args := m.Called(ctx, skillID, userID)
	var list []models.Booking
	if val := args.Get(0); val != nil {
		list = val.([]models.Booking)
	}
	return list, args.Error(1)
}

func (m *BookingRepositoryMock) UpdateStatus(ctx context.Context, bookingID int, status string) (models.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	var booking models.Booking
	if val := args.Get(0); val != nil {
		booking = val.(models.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepositoryMock) AdvanceSession(ctx context.Context, bookingID int) (models.Booking, error) {
	args := m.Called(ctx, bookingID)
	var booking models.Booking
	if val := args.Get(0); val != nil {
		booking = val.(models.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepositoryMock) SaveRating(ctx context.Context, bookingID int, role string, rating int, review string) (models.Booking, error) {
	args := m.Called(ctx, bookingID, role, rating, review)
	var booking models.Booking
	if val := args.Get(0); val != nil {
		booking = val.(models.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepositoryMock) CompleteCourse(ctx context.Context, bookingID int, rating int) error {
	args := m.Called(ctx, bookingID, rating)
	return args.Error(0)
}

func (m *BookingRepositoryMock) CountBookings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepositoryMock) AddDocument(ctx context.Context, doc models.BookingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *BookingRepositoryMock) GetDocument(ctx context.Context, docID string) (models.BookingDocument, error) {
	args := m.Called(ctx, docID)
	var doc models.BookingDocument
	if val := args.Get(0); val != nil {
		doc = val.(models.BookingDocument)
	}
	return doc, args.Error(1)
}

func (m *BookingRepositoryMock) ListDocuments(ctx context.Context, bookingID int) ([]models.BookingDocument, error) {
	args := m.Called(ctx, bookingID)
	var list []models.BookingDocument
	if val := args.Get(0); val != nil {
		list = val.([]models.BookingDocument)
	}
	return list, args.Error(1)
}

func (m *BookingRepositoryMock) DeleteDocument(ctx context.Context, bookingID int, docID string) error {
	args := m.Called(ctx, bookingID, docID)
	return args.Error(0)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

func (m *SettingsRepositoryMock) GetSettings(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	var settings models.Settings
	if val := args.Get(0); val != nil {
		settings = val.(models.Settings)
	}
	return settings, args.Error(1)
}

func (m *SettingsRepositoryMock) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	args := m.Called(ctx, settings)
	var out models.Settings
	if val := args.Get(0); val != nil {
		out = val.(models.Settings)
	}
	return out, args.Error(1)
}

type FileStoreMock struct {
	mock.Mock
}

func (m *FileStoreMock) Save(ctx context.Context, objectName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, objectName, file, size)
	return args.String(0), args.Error(1)
}

func (m *FileStoreMock) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
