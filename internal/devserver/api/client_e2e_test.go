package api

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/session"
	"github.com/dmitrijs2005/bimod/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The terminal client's own stack against the development backend.
func TestClientAgainstDevServer(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	store := tokenstore.New(metadata.NewInMemoryRepository())
	api := client.NewSessionClient(e.ts.URL, "", store)
	authSvc := services.NewAuthService(api)
	sess := session.New(authSvc, store, api, nil)

	require.NoError(t, authSvc.Ping(ctx))
	require.NoError(t, sess.Load(ctx))
	assert.Equal(t, session.Anonymous, sess.State())

	err := sess.Login(ctx, "alice", "secret")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", client.Describe(err, "Login failed"))

	require.NoError(t, sess.Register(ctx, "alice", "alice@example.org", "secret"))
	require.True(t, sess.IsAuthenticated())
	assert.Equal(t, "alice", sess.User().Username)

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	exp, ok := tokenstore.Expiry(tok)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(e.cfg.AccessTokenValidityDuration), exp, time.Minute)

	reports := services.NewReportService(api)
	name, sql := "Sales", "SELECT a FROM t WHERE x = 1"
	created, err := reports.Create(ctx, models.ReportInput{Name: &name, SQLQuery: &sql})
	require.NoError(t, err)
	dup := "select a from t where x = 9"
	_, err = reports.Create(ctx, models.ReportInput{Name: &name, SQLQuery: &dup})
	require.NoError(t, err)

	stats, src, err := services.NewDashboardService(api).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.StatsFromDashboard, src)
	assert.Equal(t, 2, stats.TotalReports)

	cons, err := reports.Consolidate(ctx)
	require.NoError(t, err)
	require.Len(t, cons.DuplicateGroups, 1)
	assert.Equal(t, models.DuplicateExact, cons.DuplicateGroups[0].Type)

	coeSvc := services.NewCOEService(api)
	res, err := coeSvc.Upload(ctx, "coe.csv", strings.NewReader("Report Name,Query SQL\nA,SELECT 1\n"))
	require.NoError(t, err)
	require.NotNil(t, res.AnalysisID)
	hist, err := coeSvc.History(ctx, services.DefaultHistorySkip, services.DefaultHistoryLimit)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.NoError(t, coeSvc.Delete(ctx, *res.AnalysisID))

	analysis, err := services.NewSQLService(api).Analyze(ctx, "SELECT TOP 3 a FROM t")
	require.NoError(t, err)
	assert.Equal(t, []string{"Consider TOP vs LIMIT for target platform"}, analysis.Recommendations)

	_, err = reports.Get(ctx, created.ID+100)
	assert.Equal(t, "Report not found", client.Describe(err, "Report not found"))

	// A token signed with another secret is rejected; the transport drops it.
	require.NoError(t, store.Set(ctx, tok+"x"))
	api.SetDefaultHeader("Authorization", "Bearer "+tok+"x")
	_, err = reports.List(ctx, 0, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.True(t, sess.HandleUnauthorized(ctx, err))
	assert.Equal(t, session.Anonymous, sess.State())
	left, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}
