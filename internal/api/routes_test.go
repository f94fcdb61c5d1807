package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/phraseflash/internal/api"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/practice"
	"github.com/vytor/phraseflash/internal/repository/sqlite"
	"github.com/vytor/phraseflash/internal/services"
	"github.com/vytor/phraseflash/internal/testutil"
)

type RoutesSuite struct {
	suite.Suite
	db      *sql.DB
	fixture *testutil.Fixture
	handler http.Handler
	now     time.Time
	userID  int64
	langID  int64
}

func (s *RoutesSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.fixture = testutil.NewFixture(s.T(), s.db)
	s.now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	users := sqlite.NewUserRepository(s.db)
	languages := sqlite.NewLanguageRepository(s.db)
	phrases := sqlite.NewPhraseRepository(s.db)
	logs := sqlite.NewPracticeLogRepository(s.db)
	cfg := services.PracticeConfig{Now: func() time.Time { return s.now }}

	srv := &api.Server{
		PracticeService: services.NewPracticeService(users, languages, phrases, practice.NewEngine(), cfg),
		StatsService:    services.NewStatsService(users, logs, cfg),
		UserService:     services.NewUserService(users, languages),
		PhraseService:   services.NewPhraseService(languages, phrases, logs),
		DB:              s.db,
		CORSOrigins:     []string{"*"},
		RequestTimeout:  5 * time.Second,
	}
	s.handler = srv.Routes()

	s.userID = s.fixture.User("learner", "UTC")
	s.langID = s.fixture.Language("en")
	_, err := s.db.Exec(`UPDATE users SET practice_include_existing = 1 WHERE id = ?`, s.userID)
	s.Require().NoError(err)
}

func (s *RoutesSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *RoutesSuite) do(method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RoutesSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *RoutesSuite) TestHealthAndReady() {
	s.Assert().Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil, 0).Code)
	s.Assert().Equal(http.StatusOK, s.do(http.MethodGet, "/ready", nil, 0).Code)
}

func (s *RoutesSuite) TestRequiresUserHeader() {
	rec := s.do(http.MethodGet, "/api/phrase/practice?languageId=1&mode=normal", nil, 0)
	s.Assert().Equal(http.StatusUnauthorized, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("UNAUTHORIZED", body.Error.Code)

	rec = s.do(http.MethodGet, "/api/me", nil, 999)
	s.Assert().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RoutesSuite) TestPracticeFlow() {
	id := s.fixture.Phrase(models.Phrase{UserID: s.userID, LanguageID: s.langID, Original: "I would like to have a coffee", CreatedAt: s.now.Add(-time.Hour)})

	rec := s.do(http.MethodGet, "/api/phrase/practice?languageId="+strconv.FormatInt(s.langID, 10)+"&mode=normal", nil, s.userID)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var session struct {
		Success    bool                    `json:"success"`
		Phrases    []models.PracticePhrase `json:"phrases"`
		TotalCount int                     `json:"totalCount"`
	}
	s.decode(rec, &session)
	s.Assert().True(session.Success)
	s.Require().Len(session.Phrases, 1)
	s.Assert().Equal(id, session.Phrases[0].ID)

	rec = s.do(http.MethodPost, "/api/phrase/practice/answer", map[string]any{
		"phraseId":   id,
		"transcript": "I would like to have coffee",
		"mode":       "normal",
	}, s.userID)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var answer struct {
		Success         bool              `json:"success"`
		Correct         bool              `json:"correct"`
		ExpectedText    string            `json:"expectedText"`
		DiffResult      []models.DiffSpan `json:"diffResult"`
		NewCorrectCount int               `json:"newCorrectCount"`
	}
	s.decode(rec, &answer)
	s.Assert().True(answer.Correct)
	s.Assert().Equal("I would like to have a coffee", answer.ExpectedText)
	s.Assert().Equal(1, answer.NewCorrectCount)
	s.Assert().Contains(answer.DiffResult, models.DiffSpan{Type: models.DiffDelete, Value: "a "})

	// Answered today, so it drops out of the session.
	rec = s.do(http.MethodGet, "/api/phrase/practice?languageId="+strconv.FormatInt(s.langID, 10)+"&mode=normal", nil, s.userID)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &session)
	s.Assert().Empty(session.Phrases)
	s.Assert().Equal(0, session.TotalCount)

	rec = s.do(http.MethodGet, "/api/phrase/practice/stats?languageId="+strconv.FormatInt(s.langID, 10), nil, s.userID)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stats models.PracticeStats
	s.decode(rec, &stats)
	s.Assert().Equal(models.PracticeStats{DailyCorrectCount: 1, TotalCorrectCount: 1, WeeklyRank: 1, TotalRank: 1}, stats)

	rec = s.do(http.MethodGet, "/api/phrases/"+strconv.FormatInt(id, 10)+"/history", nil, s.userID)
	s.Require().Equal(http.StatusOK, rec.Code)
	var history []models.PracticeLog
	s.decode(rec, &history)
	s.Assert().Len(history, 1)
}

func (s *RoutesSuite) TestAnswerValidation() {
	rec := s.do(http.MethodPost, "/api/phrase/practice/answer", map[string]any{"phraseId": 1, "mode": "normal"}, s.userID)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/phrase/practice/answer", map[string]any{"phraseId": 404, "transcript": "x", "mode": "normal"}, s.userID)
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/phrase/practice?languageId=1&mode=hard", nil, s.userID)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutesSuite) TestForeignPhraseIsForbidden() {
	other := s.fixture.User("other", "UTC")
	id := s.fixture.Phrase(models.Phrase{UserID: other, LanguageID: s.langID, Original: "hello"})

	rec := s.do(http.MethodPost, "/api/phrase/practice/answer", map[string]any{"phraseId": id, "transcript": "hello", "mode": "normal"}, s.userID)
	s.Assert().Equal(http.StatusForbidden, rec.Code)
}

func (s *RoutesSuite) TestCreatePhrase() {
	rec := s.do(http.MethodPost, "/api/phrases", map[string]any{"languageId": s.langID, "original": "Good morning", "translation": "Bom dia"}, s.userID)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var phrase models.Phrase
	s.decode(rec, &phrase)
	s.Assert().Equal("Good morning", phrase.Original)
	s.Assert().Equal(s.userID, phrase.UserID)
}

func (s *RoutesSuite) TestCompare() {
	rec := s.do(http.MethodPost, "/api/compare", models.CompareRequest{Attempt: "私は先生です", Reference: "私は学生です。", Lang: "ja"}, 0)
	s.Require().Equal(http.StatusOK, rec.Code)

	var result models.CompareResult
	s.decode(rec, &result)
	s.Assert().Equal("character", result.Granularity)
	s.Assert().False(result.Correct)
	s.Assert().NotEmpty(result.Diff)
}

func (s *RoutesSuite) TestCompareRejectsOversizedText() {
	long := strings.Repeat("a", 100_000)
	rec := s.do(http.MethodPost, "/api/compare", models.CompareRequest{Attempt: long, Reference: long}, 0)
	s.Require().Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(rec, &body)
	s.Assert().Equal("VALIDATION_ERROR", body.Error.Code)

	rec = s.do(http.MethodPost, "/api/compare", models.CompareRequest{Attempt: strings.Repeat("a", practice.MaxTextRunes), Reference: "a"}, 0)
	s.Assert().Equal(http.StatusOK, rec.Code)
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}
