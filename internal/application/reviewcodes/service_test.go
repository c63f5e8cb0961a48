package reviewcodes

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"portfolio-backend/internal/application/emails/emailstest"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const defaultAvatar = "https://cdn.test/default.jpg"

func setupReviewCodesTest(t *testing.T) (*Service, *gorm.DB, *emailstest.Sender) {
	db := testutil.DB(t)
	mailer := &emailstest.Sender{}
	svc := &Service{
		DB:            db,
		DefaultAvatar: defaultAvatar,
		Mailer:        mailer,
		MailFrom:      "owner@site.test",
		SiteName:      "Portfolio",
	}
	return svc, db, mailer
}

func seedCode(t *testing.T, db *gorm.DB, code string, used bool) *domain.ReviewCode {
	rc := &domain.ReviewCode{Code: code, ClientName: "Acme", IsUsed: used}
	require.NoError(t, db.Create(rc).Error)
	if used {
		require.NoError(t, db.Model(rc).Update("is_used", true).Error)
	}
	return rc
}

func TestRandomCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^REV-[0-9A-Z]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := RandomCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestValidate(t *testing.T) {
	svc, db, _ := setupReviewCodesTest(t)
	seedCode(t, db, "REV-ACTIVE", false)
	seedCode(t, db, "REV-USED01", true)
	ctx := context.Background()

	rc, err := svc.Validate(ctx, "REV-ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "Acme", rc.ClientName)

	_, err = svc.Validate(ctx, "REV-USED01")
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)

	_, err = svc.Validate(ctx, "REV-NOPE00")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = svc.Validate(ctx, "rev-active")
	assert.ErrorIs(t, err, ErrInvalidCode, "lookup is an exact match")
}

func TestRedeem_EndToEnd(t *testing.T) {
	svc, db, mailer := setupReviewCodesTest(t)
	seedCode(t, db, "REV-ABC123", false)
	ctx := context.Background()

	review, err := svc.Redeem(ctx, RedeemInput{Code: "REV-ABC123", Name: "Bob", Review: "Great work!"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", review.Name)
	assert.Equal(t, defaultAvatar, review.Avatar)

	var stored domain.Review
	require.NoError(t, db.First(&stored, "id = ?", review.ID).Error)
	assert.Equal(t, "Great work!", stored.Review)

	var rc domain.ReviewCode
	require.NoError(t, db.First(&rc, "code = ?", "REV-ABC123").Error)
	assert.True(t, rc.IsUsed)

	_, err = svc.Redeem(ctx, RedeemInput{Code: "REV-ABC123", Name: "Bob", Review: "Again"})
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)

	var count int64
	db.Model(&domain.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)

	sent := mailer.Messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "Acme")
}

func TestRedeem_KeepsGivenAvatar(t *testing.T) {
	svc, db, _ := setupReviewCodesTest(t)
	seedCode(t, db, "REV-AVATAR", false)

	review, err := svc.Redeem(context.Background(), RedeemInput{Code: "REV-AVATAR", Name: "Ann", Review: "Nice", Avatar: "https://cdn.test/ann.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/ann.png", review.Avatar)
}

func TestRedeem_InvalidCodeWritesNothing(t *testing.T) {
	svc, db, mailer := setupReviewCodesTest(t)

	_, err := svc.Redeem(context.Background(), RedeemInput{Code: "REV-NOPE00", Name: "Bob", Review: "Hi"})
	assert.ErrorIs(t, err, ErrInvalidCode)

	var count int64
	db.Model(&domain.Review{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, mailer.Messages())
}

func TestRedeem_MissingFields(t *testing.T) {
	svc, _, _ := setupReviewCodesTest(t)
	cases := []RedeemInput{
		{Name: "Bob", Review: "x"},
		{Code: "REV-ABC123", Review: "x"},
		{Code: "REV-ABC123", Name: "Bob", Review: "   "},
	}
	for _, in := range cases {
		_, err := svc.Redeem(context.Background(), in)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "%+v", in)
		assert.Equal(t, "Missing required fields", verr.Message)
	}
}

func TestRedeem_MailFailureIsNotSurfaced(t *testing.T) {
	svc, db, mailer := setupReviewCodesTest(t)
	mailer.Err = errors.New("relay down")
	seedCode(t, db, "REV-MAIL01", false)

	_, err := svc.Redeem(context.Background(), RedeemInput{Code: "REV-MAIL01", Name: "Bob", Review: "Hi"})
	assert.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	svc, _, _ := setupReviewCodesTest(t)

	rc, err := svc.Generate(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Client", rc.ClientName)
	assert.False(t, rc.IsUsed)
	assert.Regexp(t, `^REV-[0-9A-Z]{6}$`, rc.Code)

	rc, err = svc.Generate(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", rc.ClientName)
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	svc, db, _ := setupReviewCodesTest(t)
	seedCode(t, db, "REV-TAKEN1", false)

	codes := []string{"REV-TAKEN1", "rev-fresh1"}
	calls := 0
	svc.NewCode = func() (string, error) {
		c := codes[calls]
		calls++
		return c, nil
	}
	rc, err := svc.Generate(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "REV-FRESH1", rc.Code)
}

func TestGenerate_Exhausted(t *testing.T) {
	svc, db, _ := setupReviewCodesTest(t)
	seedCode(t, db, "REV-TAKEN1", false)

	calls := 0
	svc.NewCode = func() (string, error) {
		calls++
		return "REV-TAKEN1", nil
	}
	_, err := svc.Generate(context.Background(), "Acme")
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, maxGenerateTries, calls)
}

func TestListAndDelete(t *testing.T) {
	svc, db, _ := setupReviewCodesTest(t)
	a := seedCode(t, db, "REV-AAAAAA", false)
	seedCode(t, db, "REV-BBBBBB", false)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, a.ID.String()))
	require.NoError(t, svc.Delete(ctx, a.ID.String()))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "REV-BBBBBB", list[0].Code)
}
