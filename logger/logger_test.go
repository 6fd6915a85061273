package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/handler"
	"github.com/philipp01105/foldersync/handler/consolehandler"
	"github.com/philipp01105/foldersync/handler/filehandler"
)

// syncBuffer is a bytes.Buffer safe for writers with different locks.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext()
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func TestConfigure_Defaults(t *testing.T) {
	ctx := newTestContext(t)

	root, err := ctx.Configure(Config{})
	require.NoError(t, err)

	require.Equal(t, RootNamespace, root.Name())
	require.Equal(t, InfoLevel, root.Level())
	require.GreaterOrEqual(t, len(root.Handlers()), 1)
	require.True(t, ctx.Configured())

	console, ok := root.Handlers()[0].(*consolehandler.ConsoleHandler)
	require.True(t, ok, "first sink should be the console sink")
	require.Equal(t, InfoLevel, console.Level())
}

func TestConfigure_DebugLevel(t *testing.T) {
	ctx := newTestContext(t)

	root, err := ctx.Configure(Config{Level: "DEBUG", Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Equal(t, DebugLevel, root.Level())
}

func TestConfigure_LevelNamesAnyCase(t *testing.T) {
	ctx := newTestContext(t)

	for _, name := range []string{"debug", "Info", "WARNING", "error", "cRiTiCaL", "bogus", ""} {
		root, err := ctx.Configure(Config{Level: name, Console: &bytes.Buffer{}})
		require.NoError(t, err)
		require.Equal(t, ParseLevel(name), root.Level(), "level %q", name)
	}
}

func TestConfigure_SameRootAcrossCalls(t *testing.T) {
	ctx := newTestContext(t)

	first, err := ctx.Configure(Config{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	second, err := ctx.Configure(Config{Level: "error", Console: &bytes.Buffer{}})
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Same(t, ctx.Root(), first)
}

func TestConfigure_WithFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "test.log")
	ctx := newTestContext(t)

	root, err := ctx.Configure(Config{File: logFile, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Len(t, root.Handlers(), 2)

	root.Info("测试日志消息")

	_, err = os.Stat(logFile)
	require.NoError(t, err, "log file should exist")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "测试日志消息")
	require.Contains(t, string(content), " - folder_sync - INFO - ")

	// release file handles so the temp dir can be removed everywhere
	require.NoError(t, root.Close())
	require.False(t, ctx.Configured())
	require.NoError(t, os.Remove(logFile))
}

func TestConfigure_LineFormat(t *testing.T) {
	ctx := newTestContext(t)
	var out bytes.Buffer

	_, err := ctx.Configure(Config{Console: &out})
	require.NoError(t, err)

	ctx.Logger("scanner").Warning("disk almost full")

	line := strings.TrimSuffix(out.String(), "\n")
	parts := strings.Split(line, " - ")
	require.Len(t, parts, 4, "line %q", line)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, parts[0])
	require.Equal(t, "folder_sync.scanner", parts[1])
	require.Equal(t, "WARNING", parts[2])
	require.Equal(t, "disk almost full", parts[3])
}

func TestConfigure_CustomFormats(t *testing.T) {
	ctx := newTestContext(t)
	var out bytes.Buffer

	_, err := ctx.Configure(Config{
		Console:       &out,
		MessageFormat: "[{level}] {message} @ {time}",
		TimeFormat:    "2006",
	})
	require.NoError(t, err)

	ctx.Root().Error("boom")
	require.Regexp(t, `^\[ERROR\] boom @ \d{4}\n$`, out.String())
}

func TestGetLogger_Name(t *testing.T) {
	ctx := newTestContext(t)

	require.Equal(t, "folder_sync.test_module", ctx.Logger("test_module").Name())
	require.Equal(t, "folder_sync.a.b", ctx.Logger("a.b").Name())
	require.Same(t, ctx.Root(), ctx.Logger(""))
}

func TestGetLogger_ChildrenOwnNoSinks(t *testing.T) {
	ctx := newTestContext(t)
	_, err := ctx.Configure(Config{Console: &bytes.Buffer{}})
	require.NoError(t, err)

	require.Nil(t, ctx.Logger("child").Handlers())
	require.NotEmpty(t, ctx.Root().Handlers())
}

func TestConfigureTwice_NoDuplicateOutput(t *testing.T) {
	ctx := newTestContext(t)
	var out bytes.Buffer

	_, err := ctx.Configure(Config{Console: &out})
	require.NoError(t, err)
	root, err := ctx.Configure(Config{Console: &out})
	require.NoError(t, err)

	require.Len(t, root.Handlers(), 1)

	ctx.Logger("x").Info("once")
	require.Equal(t, 1, strings.Count(out.String(), "once"))
}

func TestConfigureTwice_ReplacesFileSink(t *testing.T) {
	dir := t.TempDir()
	ctx := newTestContext(t)

	root, err := ctx.Configure(Config{File: filepath.Join(dir, "a.log"), Console: &bytes.Buffer{}})
	require.NoError(t, err)
	oldFile := root.Handlers()[1].(*filehandler.FileHandler)

	_, err = ctx.Configure(Config{File: filepath.Join(dir, "b.log"), Console: &bytes.Buffer{}})
	require.NoError(t, err)

	entry := &core.Entry{Level: core.CriticalLevel, Message: "late"}
	require.ErrorIs(t, oldFile.Handle(entry), handler.ErrClosed, "retired file sink must be closed")

	root.Info("to b")
	a, err := os.ReadFile(filepath.Join(dir, "a.log"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "b.log"))
	require.NoError(t, err)
	require.NotContains(t, string(a), "to b")
	require.Contains(t, string(b), "to b")
}

func TestWarningThreshold_FiltersInfo(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "app.log")
	ctx := newTestContext(t)
	var out bytes.Buffer

	_, err := ctx.Configure(Config{Level: "WARNING", File: logFile, Console: &out})
	require.NoError(t, err)

	child := ctx.Logger("sync")
	child.Info("info message")
	child.Debugf("debug %d", 1)
	child.Warning("warning message")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	require.NotContains(t, out.String(), "info message")
	require.NotContains(t, string(content), "info message")
	require.NotContains(t, out.String(), "debug 1")
	require.Contains(t, out.String(), "warning message")
	require.Contains(t, string(content), "warning message")
}

func TestUnconfigured_DropsRecords(t *testing.T) {
	ctx := NewContext()
	log := ctx.Logger("early")

	require.False(t, ctx.Configured())
	require.False(t, log.Enabled(CriticalLevel))
	require.Nil(t, ctx.Root().Handlers())

	// must not panic
	log.Critical("nobody listens")
	log.Infof("nobody %s", "listens")
	require.NoError(t, ctx.Close())
}

func TestLoggerObtainedBeforeConfigure(t *testing.T) {
	ctx := newTestContext(t)
	log := ctx.Logger("early")
	var out bytes.Buffer

	_, err := ctx.Configure(Config{Console: &out})
	require.NoError(t, err)

	log.Info("now visible")
	require.Contains(t, out.String(), "folder_sync.early - INFO - now visible")
}

func TestConfigure_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	ctx := newTestContext(t)
	var out bytes.Buffer
	_, err := ctx.Configure(Config{Level: "error", Console: &out})
	require.NoError(t, err)
	before := ctx.Handlers()

	var fresh bytes.Buffer
	root, err := ctx.Configure(Config{
		Level:   "debug",
		File:    filepath.Join(blocker, "logs", "test.log"),
		Console: &fresh,
	})
	require.Error(t, err)
	require.Nil(t, root)
	require.Contains(t, err.Error(), "configure file sink")

	require.Equal(t, before, ctx.Handlers())
	require.Equal(t, ErrorLevel, ctx.Level())

	ctx.Logger("x").Error("still here")
	require.Contains(t, out.String(), "still here")
	require.Empty(t, fresh.String())
}

func TestConfigure_FailureWhenUnconfigured(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	ctx := newTestContext(t)
	_, err := ctx.Configure(Config{File: filepath.Join(blocker, "x.log")})
	require.Error(t, err)
	require.False(t, ctx.Configured())
}

func TestTransition(t *testing.T) {
	next, retired, err := transition(nil, Config{Level: "error", Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Nil(t, retired)
	require.Equal(t, ErrorLevel, next.level)
	require.Equal(t, 1, next.sinks.Len())

	again, retired, err := transition(next, Config{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.Same(t, next, retired)
	require.NotSame(t, next, again)
	require.Equal(t, 1, again.sinks.Len())
	require.Equal(t, 1, next.sinks.Len(), "previous sink set is not mutated")
}

func TestClose_ThenReconfigure(t *testing.T) {
	dir := t.TempDir()
	ctx := newTestContext(t)

	_, err := ctx.Configure(Config{File: filepath.Join(dir, "a.log"), Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())

	var out bytes.Buffer
	_, err = ctx.Configure(Config{Console: &out})
	require.NoError(t, err)
	ctx.Root().Info("back")
	require.Contains(t, out.String(), "back")
}

func TestLogger_AllLevels(t *testing.T) {
	ctx := newTestContext(t)
	var out bytes.Buffer
	_, err := ctx.Configure(Config{Level: "debug", Console: &out, MessageFormat: "{level}:{message}"})
	require.NoError(t, err)

	log := ctx.Logger("all")
	log.Debug("d")
	log.Info("i")
	log.Warning("w")
	log.Warn("w2")
	log.Error("e")
	log.Critical("c")
	log.Log(InfoLevel, "l")
	log.Debugf("d%d", 1)
	log.Infof("i%d", 1)
	log.Warningf("w%d", 1)
	log.Errorf("e%d", 1)
	log.Criticalf("c%d", 1)
	log.Logf(ErrorLevel, "l%d", 1)

	want := []string{
		"DEBUG:d", "INFO:i", "WARNING:w", "WARNING:w2", "ERROR:e", "CRITICAL:c", "INFO:l",
		"DEBUG:d1", "INFO:i1", "WARNING:w1", "ERROR:e1", "CRITICAL:c1", "ERROR:l1",
	}
	require.Equal(t, want, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"))
}

func TestLogger_IncludeCaller(t *testing.T) {
	ctx := newTestContext(t)
	var out bytes.Buffer
	_, err := ctx.Configure(Config{Console: &out, IncludeCaller: true, MessageFormat: "{caller} {message}"})
	require.NoError(t, err)

	ctx.Root().Info("where")
	ctx.Root().Infof("where %s", "f")
	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		require.True(t, strings.HasPrefix(line, "logger_test.go:"), "line %q", line)
	}
}

func TestLogger_ConcurrentWithReconfigure(t *testing.T) {
	ctx := newTestContext(t)
	out := &syncBuffer{}
	_, err := ctx.Configure(Config{Console: out})
	require.NoError(t, err)

	const goroutines = 8
	const msgs = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log := ctx.Logger("worker")
			for i := 0; i < msgs; i++ {
				log.Info("tick")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_, err := ctx.Configure(Config{Console: out})
		require.NoError(t, err)
	}
	wg.Wait()

	// a record racing a reconfiguration may hit a retired sink and be
	// dropped, but never written twice
	require.LessOrEqual(t, strings.Count(out.String(), "tick"), goroutines*msgs)
	require.Len(t, ctx.Handlers(), 1)
}

func TestContext_Sync(t *testing.T) {
	dir := t.TempDir()
	ctx := newTestContext(t)
	require.NoError(t, ctx.Sync())

	_, err := ctx.Configure(Config{File: filepath.Join(dir, "a.log"), Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.NoError(t, ctx.Sync())
}

func TestDefaultContext(t *testing.T) {
	prev := Default()
	fresh := NewContext()
	SetDefault(fresh)
	t.Cleanup(func() {
		_ = Shutdown()
		SetDefault(prev)
	})

	var out bytes.Buffer
	root, err := Configure(Config{Console: &out})
	require.NoError(t, err)
	require.Same(t, fresh.Root(), root)

	GetLogger("main").Info("Folder Sync starting...")
	require.Contains(t, out.String(), "folder_sync.main - INFO - Folder Sync starting...")

	require.NoError(t, Shutdown())
	require.False(t, fresh.Configured())
}

func TestParseLevel_Reexport(t *testing.T) {
	require.Equal(t, WarningLevel, ParseLevel("warning"))
	require.Equal(t, InfoLevel, ParseLevel("nonsense"))
}

func TestConfigure_ErrorIsUnwrappable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0500))

	ctx := newTestContext(t)
	_, err := ctx.Configure(Config{File: filepath.Join(locked, "sub", "x.log"), Console: &bytes.Buffer{}})
	require.True(t, errors.Is(err, os.ErrPermission), "got %v", err)
}
