package redis

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/restodex/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- json.go tests ---

func TestJSONSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c)
	err := s.JSONSetMulti(context.Background(), []db.JSONSetItem{
		{Key: "k1", Path: "$", Data: []byte(`{"id":"1"}`)},
		{Key: "k2", Path: "$", Data: []byte(`{"id":"2"}`)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONSetMulti_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.ErrorResult(context.DeadlineExceeded),
		})

	s := NewStoreForTest(c)
	err := s.JSONSetMulti(context.Background(), []db.JSONSetItem{
		{Key: "k1", Path: "$", Data: []byte(`{}`)},
		{Key: "k2", Path: "$", Data: []byte(`{}`)},
	})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped deadline error, got %v", err)
	}
}

func TestJSONSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.JSONSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "restaurant:1")).
		Return(mock.Result(mock.RedisString(`{"id":"1"}`)))

	s := NewStoreForTest(c)
	data, err := s.JSONGet(context.Background(), "restaurant:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestJSONGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "missing")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestJSONGet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "k")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "k")
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "mykey")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "mykey"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrBy_ReturnsNewValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("INCRBY", "restodex:restaurant:seq", "5")).
		Return(mock.Result(mock.RedisInt64(15)))

	s := NewStoreForTest(c)
	n, err := s.IncrBy(context.Background(), "restodex:restaurant:seq", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 15 {
		t.Errorf("IncrBy() = %d, want 15", n)
	}
}

func TestIncrBy_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("INCRBY", "k", "1")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.IncrBy(context.Background(), "k", 1); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.CREATE", "test:idx", "ON", "JSON", "PREFIX", "1", "test:",
			"SCHEMA",
			"$.name_lc", "AS", "name_lc", "TAG", "SEPARATOR", "|", "WITHSUFFIXTRIE",
			"$.seq", "AS", "seq", "NUMERIC", "SORTABLE",
		)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	idx := db.NewIndex("test:idx").
		OnJSON().
		Prefix("test:").
		TagWithOpts("$.name_lc", "|", false).As("name_lc").WithSuffixTrie().
		Numeric("$.seq").As("seq").Sortable().
		MustBuild()
	if err := s.CreateIndex(context.Background(), idx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:   "test:idx",
		Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}},
	}
	err := s.CreateIndex(context.Background(), idx)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestDropIndex(t *testing.T) {
	tests := []struct {
		name       string
		deleteDocs bool
		want       []string
	}{
		{"keep docs", false, []string{"FT.DROPINDEX", "test:idx"}},
		{"delete docs", true, []string{"FT.DROPINDEX", "test:idx", "DD"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)

			c.EXPECT().
				Do(gomock.Any(), mock.Match(tc.want...)).
				Return(mock.Result(mock.RedisString("OK")))

			s := NewStoreForTest(c)
			if err := s.DropIndex(context.Background(), "test:idx", tc.deleteDocs); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "test:idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	err := s.DropIndex(context.Background(), "test:idx", false)
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "test:idx")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("test:idx"))))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "test:idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected true")
	}
}

func TestIndexExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "test:idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "test:idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected false")
	}
}

func TestBuildFieldArgs(t *testing.T) {
	tests := []struct {
		name  string
		field db.IndexField
		want  []string
	}{
		{"tag", db.IndexField{Name: "f", Type: db.IndexFieldTag}, []string{"f", "TAG"}},
		{"numeric", db.IndexField{Name: "f", Type: db.IndexFieldNumeric}, []string{"f", "NUMERIC"}},
		{"text", db.IndexField{Name: "f", Type: db.IndexFieldText}, []string{"f", "TEXT"}},
		{
			"tag case sensitive",
			db.IndexField{Name: "f", Type: db.IndexFieldTag, TagCaseSensitive: true},
			[]string{"f", "TAG", "CASESENSITIVE"},
		},
		{
			"sortable numeric with alias",
			db.IndexField{Name: "$.seq", Alias: "seq", Type: db.IndexFieldNumeric, Sortable: true},
			[]string{"$.seq", "AS", "seq", "NUMERIC", "SORTABLE"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args, err := buildFieldArgs(&tc.field)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(args, tc.want) {
				t.Errorf("args = %v, want %v", args, tc.want)
			}
		})
	}
}

func TestBuildFieldArgs_Errors(t *testing.T) {
	if _, err := buildFieldArgs(&db.IndexField{Name: "", Type: db.IndexFieldTag}); err == nil {
		t.Error("expected error for empty field name")
	}
	if _, err := buildFieldArgs(&db.IndexField{Name: "f", Type: db.IndexFieldType(99)}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	_, err := buildCreateArgs(&db.IndexDefinition{Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}}})
	if err == nil {
		t.Error("expected error for empty name")
	}
	if _, err = buildCreateArgs(&db.IndexDefinition{Name: "test"}); err == nil {
		t.Error("expected error for empty fields")
	}
}

// --- search.go tests ---

func TestSearchList_BuildsSortedPagedQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "idx", `@name_lc:{*pizza*}`,
			"RETURN", "1", "$",
			"SORTBY", "seq", "ASC",
			"LIMIT", "8", "8",
			"DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(11),
			mock.RedisString("restaurant:9"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"id":"9"}`)),
			mock.RedisString("restaurant:10"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"id":"10"}`)),
		)))

	s := NewStoreForTest(c)
	res, err := s.SearchList(context.Background(), &db.ListQuery{
		Index:        "idx",
		Filters:      []db.Condition{db.Contains("name_lc", "pizza")},
		Offset:       8,
		Limit:        8,
		SortBy:       "seq",
		ReturnFields: []string{"$"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 11 {
		t.Errorf("Total = %d, want 11", res.Total)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	if res.Entries[1].Key != "restaurant:10" || res.Entries[1].Fields["$"] != `{"id":"10"}` {
		t.Errorf("unexpected entry: %+v", res.Entries[1])
	}
}

func TestSearchList_Descending(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return slices.Contains(cmd, "DESC") && cmd[2] == "*"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	res, err := s.SearchList(context.Background(), &db.ListQuery{
		Index: "idx", Limit: 5, SortBy: "seq", Descending: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestSearchList_Validation(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.SearchList(context.Background(), &db.ListQuery{}); err == nil {
		t.Error("expected error for empty index")
	}
	if _, err := s.SearchList(context.Background(), &db.ListQuery{Index: "idx", Offset: -1}); err == nil {
		t.Error("expected error for negative offset")
	}
}

func TestSearchList_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.SearchList(context.Background(), &db.ListQuery{Index: "idx", Limit: 1})
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestSearchCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "idx", "@latitude:[12.5 13.5] @longitude:[-77.25 78]",
			"LIMIT", "0", "0", "DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	s := NewStoreForTest(c)
	n, err := s.SearchCount(context.Background(), "idx", []db.Condition{
		db.Between("latitude", 12.5, 13.5),
		db.Between("longitude", -77.25, 78),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name  string
		conds []db.Condition
		want  string
	}{
		{"empty", nil, "*"},
		{"blank contains is skipped", []db.Condition{db.Contains("name_lc", "")}, "*"},
		{"contains", []db.Condition{db.Contains("name_lc", "cafe")}, `@name_lc:{*cafe*}`},
		{"escapes spaces", []db.Condition{db.Contains("name_lc", "pizza hut")}, `@name_lc:{*pizza\ hut*}`},
		{"escapes punctuation", []db.Condition{db.Contains("name_lc", "a&b's")}, `@name_lc:{*a\&b\'s*}`},
		{"escapes separator", []db.Condition{db.Contains("name_lc", "a|b")}, `@name_lc:{*a\|b*}`},
		{"tag equals", []db.Condition{db.TagEquals("name_chars", "a")}, `@name_chars:{a}`},
		{"tag equals escapes", []db.Condition{db.TagEquals("name_chars", "&")}, `@name_chars:{\&}`},
		{"blank tag equals is skipped", []db.Condition{db.TagEquals("name_chars", "")}, "*"},
		{
			"range and contains",
			[]db.Condition{db.Contains("name_lc", "x"), db.Between("seq", 1, 2)},
			`@name_lc:{*x*} @seq:[1 2]`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildFilter(tc.conds); got != tc.want {
				t.Errorf("buildFilter() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsRedisErr(t *testing.T) {
	err := mock.Result(mock.RedisError("Unknown Index name")).Error()
	if !isRedisErr(err, "unknown index name") {
		t.Error("expected case-insensitive match")
	}
	if isRedisErr(errors.New("unknown index name"), "unknown index name") {
		t.Error("plain errors are not server errors")
	}
}

// --- helpers ---

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
