// Package simulate is the offline fallback shell. It answers a fixed command
// vocabulary from canned data and a small virtual file tree, with an
// artificial delay so the offline path feels like the remote one.
package simulate

import (
	"fmt"
	"math/rand"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/joss/termbridge/internal/config"
)

const (
	minDelay = 300 * time.Millisecond
	maxDelay = 1000 * time.Millisecond
)

// virtual file tree, path -> isDir. Shared read-only across simulators.
var tree = map[string]bool{
	"/home/user":                    true,
	"/home/user/readme.txt":         false,
	"/home/user/notes.md":           false,
	"/home/user/projects":           true,
	"/home/user/projects/demo":      true,
	"/home/user/projects/demo/main": false,
	"/tmp":                          true,
	"/var":                          true,
	"/var/log":                      true,
	"/var/log/system.log":           false,
}

// Simulator answers commands locally. It mutates only its own working
// directory; everything else is a pure function of input and current time.
type Simulator struct {
	user string
	cwd  string

	now   func() time.Time
	sleep func(time.Duration)
	rng   *rand.Rand
}

// New returns a simulator rooted at the virtual home directory. The user
// name comes from configuration so whoami matches the prompt.
func New() *Simulator {
	return &Simulator{
		user:  config.Get().User,
		cwd:   "/home/user",
		now:   time.Now,
		sleep: time.Sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides time and delay handling (for testing).
func (s *Simulator) WithClock(now func() time.Time, sleep func(time.Duration)) *Simulator {
	s.now = now
	s.sleep = sleep
	return s
}

// Cwd returns the simulator's current working directory.
func (s *Simulator) Cwd() string {
	return s.cwd
}

// Run simulates one command and returns its output text. The command word is
// matched case-insensitively after trimming. Unknown commands get an
// acknowledgment echoing the input; "clear" never reaches here, the caller
// resets the output log instead.
func (s *Simulator) Run(raw string) string {
	s.sleep(s.delay())

	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help":
		return helpText
	case "ps":
		return psText
	case "stats":
		return statsText
	case "cpu":
		return "CPU usage: 25%"
	case "mem":
		return memText
	case "date":
		return s.now().Format("Mon Jan  2 15:04:05 MST 2006")
	case "whoami":
		return s.user
	case "pwd":
		return s.cwd
	case "ls":
		return s.ls(args)
	case "cd":
		return s.cd(args)
	case "find":
		return s.find(args)
	default:
		return fmt.Sprintf("Command '%s' would run on the real system (offline mode)", raw)
	}
}

func (s *Simulator) delay() time.Duration {
	return minDelay + time.Duration(s.rng.Int63n(int64(maxDelay-minDelay)))
}

func (s *Simulator) ls(args []string) string {
	dir := s.cwd
	if len(args) > 0 {
		dir = s.resolve(args[0])
	}
	if isDir, ok := tree[dir]; !ok || !isDir {
		return fmt.Sprintf("ls: cannot access '%s': No such directory", dir)
	}

	var names []string
	for p, isDir := range tree {
		if path.Dir(p) != dir || p == dir {
			continue
		}
		name := path.Base(p)
		if isDir {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n")
}

func (s *Simulator) cd(args []string) string {
	target := "/home/user"
	if len(args) > 0 {
		target = s.resolve(args[0])
	}
	if isDir, ok := tree[target]; !ok || !isDir {
		return fmt.Sprintf("cd: %s: No such directory", target)
	}
	s.cwd = target
	return ""
}

// find matches the virtual tree against a glob pattern. Patterns are
// doublestar globs, so `find **/*.txt` works the way users expect.
func (s *Simulator) find(args []string) string {
	if len(args) == 0 {
		return "usage: find <pattern>"
	}
	pattern := args[0]
	if !strings.HasPrefix(pattern, "/") {
		pattern = path.Join(s.cwd, pattern)
	}

	var matches []string
	for p := range tree {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return fmt.Sprintf("find: bad pattern '%s'", args[0])
		}
		if ok {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return "find: no matches"
	}
	sort.Strings(matches)
	return strings.Join(matches, "\n")
}

func (s *Simulator) resolve(arg string) string {
	if strings.HasPrefix(arg, "/") {
		return path.Clean(arg)
	}
	if arg == "~" || strings.HasPrefix(arg, "~/") {
		return path.Clean("/home/user" + strings.TrimPrefix(arg, "~"))
	}
	return path.Clean(path.Join(s.cwd, arg))
}

var helpText = strings.Join([]string{
	"Available commands (offline mode):",
	"  pwd     print working directory",
	"  ls      list directory contents",
	"  cd      change directory",
	"  find    match files against a glob pattern",
	"  cpu     show CPU usage",
	"  mem     show memory usage",
	"  stats   show system statistics",
	"  ps      list processes",
	"  date    show current date and time",
	"  whoami  show current user",
	"  clear   clear the terminal",
	"  help    show this help",
}, "\n")

var psText = strings.Join([]string{
	"  PID  CMD",
	"    1  init",
	"   42  sshd",
	"  137  python3 app.py",
	"  201  node server.js",
}, "\n")

var statsText = strings.Join([]string{
	"System statistics (simulated):",
	"  CPU: 25%",
	"  Memory: 4.2G / 16G (26%)",
	"  Disk: 58G / 256G (23%)",
	"  Uptime: 3 days, 4:12",
}, "\n")

var memText = strings.Join([]string{
	"              total        used        free",
	"Mem:           16Gi       4.2Gi        11Gi",
	"Swap:         2.0Gi          0B       2.0Gi",
}, "\n")
