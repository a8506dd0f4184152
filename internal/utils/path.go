package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds the vocabulary and config locations relative to the
// running binary, so installed and development builds both work.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver resolves the executable location and the platform config dir
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "sylcheck")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "sylcheck")
		}
		return filepath.Join(homeDir, ".config", "sylcheck")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "sylcheck")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "sylcheck")
	default:
		return filepath.Join(homeDir, ".sylcheck")
	}
}

// GetDataDir resolves the vocabulary directory. Candidates, in order:
// 1. the path itself when absolute
// 2. relative to the executable
// 3. relative to the working directory
// 4. data/syllables next to the executable, its parent or the config dir
// The executable-relative path is returned when none holds a word list.
func (pr *PathResolver) GetDataDir(userPath string) (string, error) {
	for _, path := range pr.dataDirCandidates(userPath) {
		if IsVocabDir(path) {
			log.Debugf("Found vocabulary directory: %s", path)
			return path, nil
		}
		log.Debugf("Vocabulary directory candidate not valid: %s", path)
	}
	return filepath.Join(pr.executableDir, userPath), nil
}

func (pr *PathResolver) dataDirCandidates(userPath string) []string {
	var candidates []string
	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data", "syllables"),
		filepath.Join(filepath.Dir(pr.executableDir), "data", "syllables"),
		filepath.Join(pr.configDir, "data", "syllables"),
	)
}

// IsVocabDir checks if path is a directory with at least one .txt word list
func IsVocabDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(path, "*.txt"))
	return err == nil && len(matches) > 0
}

