package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

var (
	tavernLocationID  = id.LocationID(uuid.MustParse("11111111-1111-1111-1111-111111111111"))
	dungeonLocationID = id.LocationID(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
)

func TestMemoryRepoSaveLoadDelete(t *testing.T) {
	repo := NewMemory()
	save := &SaveFile{Version: CurrentVersion, World: &world.World{}, SavedAt: time.Now()}

	if err := repo.Save("sess-1", save); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load("sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", loaded.Version, CurrentVersion)
	}

	ids, err := repo.List()
	if err != nil || len(ids) != 1 || ids[0] != "sess-1" {
		t.Errorf("list = %v, %v", ids, err)
	}

	if err := repo.Delete("sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load("sess-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("load after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoLoadMissingReturnsNotFound(t *testing.T) {
	repo := NewMemory()
	if _, err := repo.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoSavesAreIndependentCopies(t *testing.T) {
	repo := NewMemory()
	w := &world.World{CurrentLocation: tavernLocationID}
	if err := repo.Save("sess-1", &SaveFile{Version: 1, World: w}); err != nil {
		t.Fatalf("save: %v", err)
	}
	w.CurrentLocation = dungeonLocationID // mutating the original must not affect the stored copy

	loaded, err := repo.Load("sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.World.CurrentLocation != tavernLocationID {
		t.Errorf("stored location = %q, want %q (mutation after Save leaked in)", loaded.World.CurrentLocation, tavernLocationID)
	}
}

// RedisRepoTestSuite runs the repository against redismock:
// redismock.NewClientMock, ExpectSet/ExpectGet with SetVal/SetErr, and an
// ExpectationsWereMet assertion in TearDownTest.
type RedisRepoTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedis(client, 0)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) TestSaveHappyPath() {
	save := &SaveFile{Version: CurrentVersion, World: &world.World{CurrentLocation: tavernLocationID}, SavedAt: time.Unix(0, 0).UTC()}
	data, err := json.Marshal(save)
	s.Require().NoError(err)

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("dm:session:sess-1", string(data), 0).SetVal("OK")
	s.mock.ExpectSAdd("dm:sessions", "sess-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Save("sess-1", save))
}

func (s *RedisRepoTestSuite) TestSaveDependencyError() {
	save := &SaveFile{Version: CurrentVersion, World: &world.World{}}
	data, err := json.Marshal(save)
	s.Require().NoError(err)

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("dm:session:sess-1", string(data), 0).SetErr(errors.New("redis down"))
	s.mock.ExpectSAdd("dm:sessions", "sess-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Error(s.repo.Save("sess-1", save))
}

func (s *RedisRepoTestSuite) TestLoadNotFound() {
	s.mock.ExpectGet("dm:session:ghost").RedisNil()

	_, err := s.repo.Load("ghost")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisRepoTestSuite) TestLoadHappyPath() {
	save := &SaveFile{Version: CurrentVersion, World: &world.World{CurrentLocation: tavernLocationID}, SavedAt: time.Unix(0, 0).UTC()}
	data, err := json.Marshal(save)
	s.Require().NoError(err)

	s.mock.ExpectGet("dm:session:sess-1").SetVal(string(data))

	loaded, err := s.repo.Load("sess-1")
	s.Require().NoError(err)
	s.Equal(tavernLocationID, loaded.World.CurrentLocation)
}

func (s *RedisRepoTestSuite) TestDeleteNotFound() {
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("dm:session:ghost").SetVal(0)
	s.mock.ExpectSRem("dm:sessions", "ghost").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	s.ErrorIs(s.repo.Delete("ghost"), ErrNotFound)
}
