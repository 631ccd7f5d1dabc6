package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkoskinen/inviteboard/internal/api/response"
	"github.com/mkoskinen/inviteboard/internal/dependencies/mocks"
	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/storage/memory"
	"github.com/mkoskinen/inviteboard/internal/testutil"
)

type APISuite struct {
	suite.Suite
	server    *httptest.Server
	published []string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	engine := leaderboard.New(memory.New(clk), testutil.NopLogger())

	s.published = nil
	router := NewRouter(RouterConfig{
		Logger: testutil.NopLogger(),
		Engine: engine,
		Publish: func(commitMessage string) {
			s.published = append(s.published, commitMessage)
		},
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) submit(userID, displayName, invites string) *http.Response {
	body, err := json.Marshal(map[string]string{
		"user_id":      userID,
		"display_name": displayName,
		"invites":      invites,
	})
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+"/api/v1/submissions", "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) get(path string) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, into any) {
	defer func() { _ = resp.Body.Close() }()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(into))
}

func (s *APISuite) errorCode(resp *http.Response) string {
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(resp, &envelope)
	return envelope.Error.Code
}

func (s *APISuite) TestSubmitCreatesEntry() {
	resp := s.submit("user-1", "alice", "10")
	s.Equal(http.StatusCreated, resp.StatusCode)

	var result response.Submission
	s.decode(resp, &result)
	s.True(result.IsNew)
	s.Equal(10, result.Invites)
	s.Equal(1, result.Rank)

	s.Require().Len(s.published, 1)
	s.Contains(s.published[0], "@alice")
}

func (s *APISuite) TestSubmitOverwrites() {
	resp := s.submit("user-1", "alice", "10")
	_ = resp.Body.Close()

	resp = s.submit("user-1", "alice", "4")
	s.Equal(http.StatusOK, resp.StatusCode)

	var result response.Submission
	s.decode(resp, &result)
	s.False(result.IsNew)
	s.Equal(10, result.PreviousInvites)
	s.Equal(4, result.Invites)
}

func (s *APISuite) TestSubmitValidation() {
	cases := []struct {
		name    string
		userID  string
		display string
		invites string
		code    string
	}{
		{"missing user", "", "alice", "5", "INVALID_REQUEST"},
		{"missing display name", "user-1", "", "5", "INVALID_REQUEST"},
		{"missing count", "user-1", "alice", "", "MISSING_COUNT"},
		{"non-numeric count", "user-1", "alice", "lots", "NOT_A_NUMBER"},
		{"negative count", "user-1", "alice", "-3", "NEGATIVE_COUNT"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			resp := s.submit(tc.userID, tc.display, tc.invites)
			s.Equal(http.StatusBadRequest, resp.StatusCode)
			s.Equal(tc.code, s.errorCode(resp))
		})
	}

	// Rejected submissions never trigger a publish
	s.Empty(s.published)
}

func (s *APISuite) TestLeaderboardOrdering() {
	for _, sub := range []struct {
		id, name, invites string
	}{
		{"b", "bob", "10"},
		{"a", "anna", "10"},
		{"c", "carol", "5"},
	} {
		resp := s.submit(sub.id, sub.name, sub.invites)
		_ = resp.Body.Close()
	}

	resp := s.get("/api/v1/leaderboard")
	s.Equal(http.StatusOK, resp.StatusCode)

	var board response.Leaderboard
	s.decode(resp, &board)
	s.Require().Len(board.Entries, 3)
	s.Equal("b", board.Entries[0].UserID)
	s.Equal("a", board.Entries[1].UserID)
	s.Equal("c", board.Entries[2].UserID)
	for i, entry := range board.Entries {
		s.Equal(i+1, entry.Rank)
	}
	s.Equal(3, board.Stats.Participants)
	s.Equal(25, board.Stats.TotalInvites)
}

func (s *APISuite) TestStats() {
	resp := s.submit("a", "anna", "7")
	_ = resp.Body.Close()

	resp = s.get("/api/v1/stats")
	s.Equal(http.StatusOK, resp.StatusCode)

	var stats response.Stats
	s.decode(resp, &stats)
	s.Equal(1, stats.Participants)
	s.Equal(7, stats.TotalInvites)
}

func (s *APISuite) TestGetUser() {
	resp := s.submit("a", "anna", "7")
	_ = resp.Body.Close()

	resp = s.get("/api/v1/users/a")
	s.Equal(http.StatusOK, resp.StatusCode)

	var user response.User
	s.decode(resp, &user)
	s.Equal(1, user.Rank)
	s.Equal("anna", user.DisplayName)
	s.Equal(7, user.Invites)
}

func (s *APISuite) TestGetUserNotFound() {
	resp := s.get("/api/v1/users/nonexistent")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("ENTRY_NOT_FOUND", s.errorCode(resp))
}

func (s *APISuite) TestHealth() {
	resp := s.get("/api/v1/health")
	s.Equal(http.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	s.decode(resp, &health)
	s.Equal("ok", health.Status)
}

func (s *APISuite) TestInvalidBody() {
	resp, err := http.Post(
		s.server.URL+"/api/v1/submissions",
		"application/json",
		bytes.NewReader([]byte("{not json")),
	)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_REQUEST", s.errorCode(resp))
}

func (s *APISuite) TestMethodNotAllowed() {
	resp, err := http.Post(s.server.URL+"/api/v1/leaderboard", "application/json", nil)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}
