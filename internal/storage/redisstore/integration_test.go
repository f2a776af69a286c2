//go:build integration

package redisstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type FavoriteStoreIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcredis.RedisContainer
	store     *FavoriteStore
}

func (s *FavoriteStoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcredis.Run(s.ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	client, err := NewClient(s.ctx, url)
	s.Require().NoError(err)

	s.store = NewFavoriteStore(client, "")
}

func (s *FavoriteStoreIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *FavoriteStoreIntegrationSuite) SetupTest() {
	_ = s.store.client.Del(s.ctx, s.store.key).Err()
}

func TestFavoriteStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(FavoriteStoreIntegrationSuite))
}

func (s *FavoriteStoreIntegrationSuite) TestList_EmptyWhenKeyMissing() {
	ids, err := s.store.List(s.ctx)
	s.NoError(err)
	s.Empty(ids)
}

func (s *FavoriteStoreIntegrationSuite) TestToggle_AddsFromEmpty() {
	ids, err := s.store.Toggle(s.ctx, 42)
	s.NoError(err)
	s.Equal([]int64{42}, ids)

	stored, err := s.store.List(s.ctx)
	s.NoError(err)
	s.Equal([]int64{42}, stored)
}

func (s *FavoriteStoreIntegrationSuite) TestToggle_RoundTrip() {
	_, err := s.store.Toggle(s.ctx, 1)
	s.Require().NoError(err)
	_, err = s.store.Toggle(s.ctx, 2)
	s.Require().NoError(err)

	ids, err := s.store.Toggle(s.ctx, 1)
	s.NoError(err)
	s.Equal([]int64{2}, ids)

	ids, err = s.store.Toggle(s.ctx, 1)
	s.NoError(err)
	s.Equal([]int64{2, 1}, ids)
}

func (s *FavoriteStoreIntegrationSuite) TestToggle_SurvivesRawKeyInspection() {
	_, err := s.store.Toggle(s.ctx, 9)
	s.Require().NoError(err)

	raw, err := s.store.client.Get(s.ctx, "favorites").Result()
	s.NoError(err)
	s.JSONEq("[9]", raw)
}
