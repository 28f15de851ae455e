package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/metrics"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/internal/persist"
	"github.com/mmynk/hotelbilling/internal/storage"
	"github.com/mmynk/hotelbilling/internal/storage/memory"
)

func TestOpen_SeedsDefaults(t *testing.T) {
	s := newTestState(t)

	menu := s.Menu()
	require.Len(t, menu, 5)
	assert.Equal(t, models.MenuItem{ID: "m1", Name: "Margherita Pizza", Price: 250, GST: 0.05}, menu[0])

	tables := s.Tables()
	require.Len(t, tables, 8)
	assert.Equal(t, models.Table{ID: "T1", Name: "Table 1"}, tables[0])
	assert.Equal(t, "T8", tables[7].ID)

	assert.Len(t, s.Waiters(), 3)
	assert.Len(t, s.Users(), 3)
	assert.Empty(t, s.Bills())
}

func TestOpen_NilStore(t *testing.T) {
	s, err := Open(context.Background(), nil, testOptions()...)
	require.NoError(t, err)
	assert.Len(t, s.Tables(), 8)
}

func TestOpen_PersistsEveryCollection(t *testing.T) {
	rec := newRecorder()
	newTestState(t, WithPersister(rec))

	assert.ElementsMatch(t, storage.Keys, rec.enqueued())
}

func TestOpen_LoadsStoredCollections(t *testing.T) {
	created := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	s := newStateOn(t, map[string]any{
		storage.KeyTables: []models.Table{
			{ID: "T1", Name: "Window", CurrentBillID: "B41"},
			{ID: "T2", Name: "Patio"},
		},
		storage.KeyBills: []models.Bill{
			{ID: "B41", TableID: "T1", WaiterName: "Priya", Items: []models.BillLine{}, CreatedAt: created},
			{ID: "B7", TableID: "T2", WaiterName: "Ravi", Items: []models.BillLine{}, CreatedAt: created, Paid: true},
		},
	})

	tables := s.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "Window", tables[0].Name)
	assert.Len(t, s.Menu(), 5, "menu falls back to defaults")
	assert.Len(t, s.OpenBills(), 1)

	id, err := s.CreateBill("T2", "Suma")
	require.NoError(t, err)
	assert.Equal(t, "B42", id, "bill ids continue past the largest stored id")
}

func TestOpen_CorruptCollectionFallsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Save(ctx, storage.KeyMenu, []byte(`{{{`)))
	require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyWaiters, []models.Waiter{{ID: "w9", Name: "Anil"}}))

	s, err := Open(ctx, store, testOptions()...)
	require.NoError(t, err)

	assert.Len(t, s.Menu(), 5)
	assert.Equal(t, []models.Waiter{{ID: "w9", Name: "Anil"}}, s.Waiters())
}

func TestOpen_SetsOpenBillGauge(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	newStateOn(t, map[string]any{
		storage.KeyBills: []models.Bill{
			{ID: "B2", TableID: "T1"},
			{ID: "B1", TableID: "T2", Paid: true},
		},
	}, WithMetrics(m))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenBills))
}

func TestState_ReadsReturnCopies(t *testing.T) {
	s := newTestState(t)
	id, err := s.CreateBill("T1", "Ravi")
	require.NoError(t, err)
	require.NoError(t, s.AddMenuItemToBill(id, "m1", 1))

	bill, err := s.Bill(id)
	require.NoError(t, err)
	bill.Items[0].Qty = 99
	bill.Paid = true

	tables := s.Tables()
	tables[0].CurrentBillID = ""

	again, err := s.Bill(id)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Qty)
	assert.False(t, again.Paid)

	table, err := s.Table("T1")
	require.NoError(t, err)
	assert.Equal(t, id, table.CurrentBillID)
}

func TestState_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	writer := persist.NewWriter(store, persist.Config{}, quietLogger(), nil)

	s, err := Open(ctx, store, testOptions(WithPersister(writer))...)
	require.NoError(t, err)

	id, err := s.CreateBill("T3", "Suma")
	require.NoError(t, err)
	require.NoError(t, s.AddMenuItemToBill(id, "m2", 2))
	_, err = s.AddTable("Rooftop")
	require.NoError(t, err)

	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, writer.Close(flushCtx))

	reopened, err := Open(ctx, store, testOptions()...)
	require.NoError(t, err)

	assert.Equal(t, s.Bills(), reopened.Bills())
	assert.Equal(t, s.Tables(), reopened.Tables())
	assert.Equal(t, s.Users(), reopened.Users())

	table, err := reopened.Table("T3")
	require.NoError(t, err)
	assert.Equal(t, id, table.CurrentBillID)
}

// flakyStore fails every Load of one key and passes everything else through.
type flakyStore struct {
	storage.Store
	key string
	err error
}

func (f flakyStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == f.key {
		return nil, f.err
	}
	return f.Store.Load(ctx, key)
}

func storedBills(created time.Time) []models.Bill {
	return []models.Bill{
		{ID: "B7", TableID: "T2", WaiterName: "Ravi", Items: []models.BillLine{}, CreatedAt: created, Paid: true},
	}
}

func TestOpen_UnreadableCollectionIsNeverWritten(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyBills, storedBills(fixedNow)))

	rec := newRecorder()
	s, err := Open(ctx, flakyStore{Store: store, key: storage.KeyBills, err: errors.New("connection reset")},
		testOptions(WithPersister(rec))...)
	require.NoError(t, err)

	assert.Empty(t, s.Bills())
	assert.ElementsMatch(t, []string{storage.KeyMenu, storage.KeyTables, storage.KeyWaiters, storage.KeyUsers}, rec.enqueued())

	rec.reset()
	_, err = s.CreateBill("T1", "Ravi")
	require.NoError(t, err)
	assert.Equal(t, []string{storage.KeyTables}, rec.enqueued())
}

func TestOpen_ReadFailureKeepsStoredData(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	want := storedBills(fixedNow)
	require.NoError(t, storage.SaveJSON(ctx, store, storage.KeyBills, want))

	flaky := flakyStore{Store: store, key: storage.KeyBills, err: errors.New("connection reset")}
	writer := persist.NewWriter(flaky, persist.Config{}, quietLogger(), nil)
	s, err := Open(ctx, flaky, testOptions(WithPersister(writer))...)
	require.NoError(t, err)

	_, err = s.CreateBill("T1", "Ravi")
	require.NoError(t, err)

	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, writer.Close(flushCtx))

	got, err := storage.LoadJSON[[]models.Bill](ctx, store, storage.KeyBills, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	reopened, err := Open(ctx, store, testOptions()...)
	require.NoError(t, err)
	assert.Equal(t, want, reopened.Bills())
}

func TestOpen_MalformedCollectionIsRewritten(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Save(ctx, storage.KeyBills, []byte("{not json")))

	rec := newRecorder()
	_, err := Open(ctx, store, testOptions(WithPersister(rec))...)
	require.NoError(t, err)

	assert.ElementsMatch(t, storage.Keys, rec.enqueued())
	assert.Empty(t, decodeLast[[]models.Bill](t, rec, storage.KeyBills))
}

func TestOpen_HashesPlaintextPasswords(t *testing.T) {
	rec := newRecorder()
	s := newStateOn(t, map[string]any{
		storage.KeyUsers: []map[string]string{
			{"id": "admin", "name": "Administrator", "role": "admin", "password": "admin123"},
			{"id": "ravi", "name": "Ravi", "role": "staff", "password": "ravi123"},
		},
	}, WithPersister(rec))

	session, err := s.Login(testContext(t), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.Session{ID: "admin", Name: "Administrator", Role: models.RoleAdmin}, session)

	_, err = s.Authenticate(testContext(t), "ravi", "ravi123")
	require.NoError(t, err)

	saved := decodeLast[[]map[string]any](t, rec, storage.KeyUsers)
	require.Len(t, saved, 2)
	for _, u := range saved {
		assert.NotEmpty(t, u["passwordHash"])
		assert.NotContains(t, u, "password")
	}
}

func TestOpen_KeepsExistingHashOverPlaintext(t *testing.T) {
	hash, err := auth.HashPassword("current", bcrypt.MinCost)
	require.NoError(t, err)

	s := newStateOn(t, map[string]any{
		storage.KeyUsers: []map[string]string{
			{"id": "admin", "name": "Administrator", "role": "admin", "passwordHash": hash, "password": "stale"},
		},
	})

	_, err = s.Authenticate(testContext(t), "admin", "current")
	require.NoError(t, err)
	_, err = s.Authenticate(testContext(t), "admin", "stale")
	assert.Error(t, err)
}

func TestOpen_EmptyUsersFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"null", "null"},
		{"empty list", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			s := newStateOn(t, map[string]any{
				storage.KeyUsers: json.RawMessage(tt.value),
			}, WithPersister(rec))

			assert.Len(t, s.Users(), 3)
			_, err := s.Login(testContext(t), "admin", "admin123")
			require.NoError(t, err)
			assert.Len(t, decodeLast[[]models.User](t, rec, storage.KeyUsers), 3)
		})
	}
}
