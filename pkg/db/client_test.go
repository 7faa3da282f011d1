package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type flavorRow struct {
	ID   int
	Name string
}

func newTestClient(t *testing.T) (*Client, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&flavorRow{}))
	return &Client{conn: conn}, conn
}

func TestWithTxCommits(t *testing.T) {
	client, conn := newTestClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&flavorRow{Name: "pistachio"}).Error
	})
	require.NoError(t, err)

	var got flavorRow
	require.NoError(t, conn.First(&got, "name = ?", "pistachio").Error)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, conn := newTestClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&flavorRow{Name: "rum raisin"}).Error; err != nil {
			return err
		}
		return errors.New("freezer door left open")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, conn.Model(&flavorRow{}).Where("name = ?", "rum raisin").Count(&count).Error)
	require.Zero(t, count)
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`)
	require.True(t, IsUniqueViolation(dup, ""))
	require.True(t, IsUniqueViolation(dup, "idx_users_username"))
	require.False(t, IsUniqueViolation(dup, "idx_promo_codes_code"))
	require.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	require.False(t, IsUniqueViolation(nil, ""))
}
