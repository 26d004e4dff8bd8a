package ort

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultRuntimeVersion is the ONNX Runtime release fetched when no
	// version is configured. It tracks the release validated by CI.
	DefaultRuntimeVersion = "1.23.1"

	defaultReleaseBaseURL = "https://github.com/microsoft/onnxruntime/releases/download"
)

var errRuntimeLibraryNotFound = errors.New("ONNX Runtime shared library not found")
var cacheFallbackWarnOnce sync.Once

// BootstrapOption configures EnsureRuntimeLibrary.
type BootstrapOption func(*bootstrapConfig) error

type bootstrapConfig struct {
	libraryPath     string
	cacheDir        string
	version         string
	disableDownload bool
	expectedSHA256  string
	baseURL         string
	httpClient      *http.Client
	goos            string
	goarch          string
}

// releaseArtifact describes the platform archive published for an ONNX
// Runtime release.
type releaseArtifact struct {
	platform    string
	extension   string
	libraryName string
	libraryGlob string
}

// WithLibraryPath pins bootstrap to an existing shared library; no cache
// lookup or download happens.
func WithLibraryPath(path string) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("library path cannot be empty")
		}
		cfg.libraryPath = path
		return nil
	}
}

// WithCacheDir sets the directory used for downloads and extracted runtimes.
func WithCacheDir(dir string) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		cfg.cacheDir = dir
		return nil
	}
}

// WithRuntimeVersion sets the ONNX Runtime release to fetch, for example
// "1.23.1".
func WithRuntimeVersion(version string) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		version = strings.TrimSpace(version)
		if version == "" {
			return fmt.Errorf("runtime version cannot be empty")
		}
		cfg.version = version
		return nil
	}
}

// WithDisableDownload forbids network access; only the cache and explicit
// paths are consulted.
func WithDisableDownload(disable bool) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		cfg.disableDownload = disable
		return nil
	}
}

// WithExpectedSHA256 enforces a checksum on the downloaded archive.
func WithExpectedSHA256(checksum string) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		checksum = strings.TrimSpace(strings.ToLower(checksum))
		if len(checksum) != 64 {
			return fmt.Errorf("expected SHA256 checksum must be 64 hex characters")
		}
		if _, err := hex.DecodeString(checksum); err != nil {
			return fmt.Errorf("expected SHA256 checksum must be hex: %w", err)
		}
		cfg.expectedSHA256 = checksum
		return nil
	}
}

func withReleaseBaseURL(baseURL string) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		baseURL = strings.TrimSpace(baseURL)
		if baseURL == "" {
			return fmt.Errorf("release base URL cannot be empty")
		}
		cfg.baseURL = baseURL
		return nil
	}
}

func withHTTPClient(client *http.Client) BootstrapOption {
	return func(cfg *bootstrapConfig) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		cfg.httpClient = client
		return nil
	}
}

// EnsureRuntimeLibrary resolves an ONNX Runtime shared library for the
// current platform, downloading and caching an official release archive
// when no explicit path is configured. It returns an absolute path.
func EnsureRuntimeLibrary(opts ...BootstrapOption) (string, error) {
	cfg, err := resolveBootstrapConfig(opts...)
	if err != nil {
		return "", err
	}

	if cfg.libraryPath != "" {
		return validateLibraryFile(cfg.libraryPath)
	}

	artifact, err := resolveReleaseArtifact(cfg.goos, cfg.goarch)
	if err != nil {
		return "", err
	}

	installDir := filepath.Join(cfg.cacheDir, artifact.archiveName(cfg.version))
	if path, resolveErr := findInstalledLibrary(installDir, artifact); resolveErr == nil {
		return path, nil
	} else if !errors.Is(resolveErr, errRuntimeLibraryNotFound) {
		return "", resolveErr
	}

	if cfg.disableDownload {
		return "", fmt.Errorf("runtime library not found in cache and download is disabled: %s", installDir)
	}

	if err := os.MkdirAll(cfg.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory %q: %w", cfg.cacheDir, err)
	}

	// Concurrent processes race on the same cache entry; the winner
	// downloads, the rest find the installed library on re-check.
	lockPath := filepath.Join(cfg.cacheDir, ".locks", fmt.Sprintf("%s-%s.lock", artifact.platform, cfg.version))
	var resolvedPath string
	if err := withProcessFileLock(lockPath, func() error {
		if path, resolveErr := findInstalledLibrary(installDir, artifact); resolveErr == nil {
			resolvedPath = path
			return nil
		} else if !errors.Is(resolveErr, errRuntimeLibraryNotFound) {
			return resolveErr
		}

		if err := fetchAndInstallRuntime(cfg, artifact, installDir); err != nil {
			return err
		}

		path, resolveErr := findInstalledLibrary(installDir, artifact)
		if resolveErr != nil {
			return fmt.Errorf("bootstrap completed but shared library could not be resolved: %w", resolveErr)
		}
		resolvedPath = path
		return nil
	}); err != nil {
		return "", err
	}

	return resolvedPath, nil
}

// AcquireEnvironmentWithBootstrap resolves a shared library via bootstrap,
// configures the library path, and acquires the shared environment.
func AcquireEnvironmentWithBootstrap(name string, opts ...BootstrapOption) (*Environment, error) {
	path, err := EnsureRuntimeLibrary(opts...)
	if err != nil {
		return nil, &Error{Kind: KindEnvironment, Op: "AcquireEnvironmentWithBootstrap", Err: err}
	}

	mu.Lock()
	live := refCount > 0
	current := libPath
	mu.Unlock()

	if live && current != path {
		return nil, &Error{
			Kind: KindEnvironment,
			Op:   "AcquireEnvironmentWithBootstrap",
			Path: path,
			Err:  fmt.Errorf("environment is already initialized with library %q", current),
		}
	}

	if !live {
		if err := SetSharedLibraryPath(path); err != nil {
			// Another goroutine may have initialized between the check
			// and here; tolerate it only when the paths agree.
			mu.Lock()
			live = refCount > 0
			current = libPath
			mu.Unlock()
			if !(live && current == path) {
				return nil, &Error{Kind: KindEnvironment, Op: "AcquireEnvironmentWithBootstrap", Err: err}
			}
		}
	}

	return AcquireEnvironment(name)
}

func resolveBootstrapConfig(opts ...BootstrapOption) (bootstrapConfig, error) {
	disableDownload, err := parseBoolEnv("ONNXRUNTIME_DISABLE_DOWNLOAD")
	if err != nil {
		return bootstrapConfig{}, err
	}

	cfg := bootstrapConfig{
		libraryPath:     strings.TrimSpace(os.Getenv("ONNXRUNTIME_LIB_PATH")),
		cacheDir:        strings.TrimSpace(os.Getenv("ONNXRUNTIME_CACHE_DIR")),
		version:         strings.TrimSpace(os.Getenv("ONNXRUNTIME_VERSION")),
		disableDownload: disableDownload,
		baseURL:         defaultReleaseBaseURL,
		httpClient:      &http.Client{Timeout: 2 * time.Minute},
		goos:            runtime.GOOS,
		goarch:          runtime.GOARCH,
	}

	if cfg.version == "" {
		cfg.version = DefaultRuntimeVersion
	}
	if cfg.cacheDir == "" {
		cfg.cacheDir = defaultCacheDir()
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return bootstrapConfig{}, err
		}
	}

	version, err := normalizeRuntimeVersion(cfg.version)
	if err != nil {
		return bootstrapConfig{}, err
	}
	cfg.version = version
	cfg.cacheDir = filepath.Clean(cfg.cacheDir)
	cfg.baseURL = strings.TrimRight(strings.TrimSpace(cfg.baseURL), "/")

	if cfg.baseURL == "" {
		return bootstrapConfig{}, fmt.Errorf("release base URL is empty")
	}
	if cfg.httpClient == nil {
		return bootstrapConfig{}, fmt.Errorf("HTTP client cannot be nil")
	}

	return cfg, nil
}

// normalizeRuntimeVersion validates a release version and renders it the
// way the microsoft/onnxruntime release assets are named (no "v" prefix,
// full major.minor.patch).
func normalizeRuntimeVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("runtime version is empty")
	}

	v, err := semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return "", fmt.Errorf("invalid runtime version %q: %w", version, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return "", fmt.Errorf("runtime version %q must be a plain release version", version)
	}

	return v.String(), nil
}

func resolveReleaseArtifact(goos, goarch string) (releaseArtifact, error) {
	switch goos {
	case "darwin":
		switch goarch {
		case "arm64":
			return releaseArtifact{"osx-arm64", "tgz", "libonnxruntime.dylib", "libonnxruntime*.dylib"}, nil
		case "amd64":
			return releaseArtifact{"osx-x86_64", "tgz", "libonnxruntime.dylib", "libonnxruntime*.dylib"}, nil
		}
	case "linux":
		switch goarch {
		case "arm64":
			return releaseArtifact{"linux-aarch64", "tgz", "libonnxruntime.so", "libonnxruntime.so*"}, nil
		case "amd64":
			return releaseArtifact{"linux-x64", "tgz", "libonnxruntime.so", "libonnxruntime.so*"}, nil
		}
	case "windows":
		switch goarch {
		case "amd64":
			return releaseArtifact{"win-x64", "zip", "onnxruntime.dll", "onnxruntime*.dll"}, nil
		case "arm64":
			return releaseArtifact{"win-arm64", "zip", "onnxruntime.dll", "onnxruntime*.dll"}, nil
		}
	}

	return releaseArtifact{}, fmt.Errorf("unsupported platform for runtime bootstrap: GOOS=%s GOARCH=%s", goos, goarch)
}

func (a releaseArtifact) archiveName(version string) string {
	return fmt.Sprintf("onnxruntime-%s-%s", a.platform, version)
}

func (a releaseArtifact) archiveFilename(version string) string {
	return fmt.Sprintf("%s.%s", a.archiveName(version), a.extension)
}

func (a releaseArtifact) downloadURL(baseURL, version string) string {
	return fmt.Sprintf("%s/v%s/%s", strings.TrimRight(baseURL, "/"), version, a.archiveFilename(version))
}

func fetchAndInstallRuntime(cfg bootstrapConfig, artifact releaseArtifact, installDir string) error {
	url := artifact.downloadURL(cfg.baseURL, cfg.version)
	archivePath, checksum, err := downloadReleaseArchive(cfg, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(archivePath)
	}()

	if cfg.expectedSHA256 != "" && checksum != cfg.expectedSHA256 {
		return fmt.Errorf("download checksum mismatch: expected %s, got %s", cfg.expectedSHA256, checksum)
	}

	// Extraction goes through a staging directory so a half-extracted
	// tree never lands at the install path.
	stagingRoot := installDir + fmt.Sprintf(".staging-%d", time.Now().UnixNano())
	if err := os.MkdirAll(stagingRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory %q: %w", stagingRoot, err)
	}
	defer func() {
		_ = os.RemoveAll(stagingRoot)
	}()

	if err := extractArchive(archivePath, stagingRoot, artifact.extension); err != nil {
		return err
	}

	extractedDir := filepath.Join(stagingRoot, artifact.archiveName(cfg.version))
	info, statErr := os.Stat(extractedDir)
	if statErr != nil {
		if !errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("failed to inspect extracted directory %q: %w", extractedDir, statErr)
		}
		extractedDir = stagingRoot
	} else if !info.IsDir() {
		return fmt.Errorf("extracted path is not a directory: %q", extractedDir)
	}

	if _, err := findInstalledLibrary(extractedDir, artifact); err != nil {
		if errors.Is(err, errRuntimeLibraryNotFound) {
			return fmt.Errorf("downloaded archive did not contain a shared library under %q", filepath.Join(extractedDir, "lib"))
		}
		return err
	}

	if err := os.RemoveAll(installDir); err != nil {
		return fmt.Errorf("failed to remove previous runtime install at %q: %w", installDir, err)
	}
	if err := os.Rename(extractedDir, installDir); err != nil {
		return fmt.Errorf("failed to install runtime to %q: %w", installDir, err)
	}
	return nil
}

func downloadReleaseArchive(cfg bootstrapConfig, url string) (archivePath string, checksum string, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create download request for %q: %w", url, err)
	}

	resp, err := cfg.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to download runtime archive from %q: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if trimmed := strings.TrimSpace(string(snippet)); trimmed != "" {
			return "", "", fmt.Errorf("failed to download runtime archive from %q: HTTP %d: %s", url, resp.StatusCode, trimmed)
		}
		return "", "", fmt.Errorf("failed to download runtime archive from %q: HTTP %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(cfg.cacheDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create cache directory %q: %w", cfg.cacheDir, err)
	}

	tmpFile, err := os.CreateTemp(cfg.cacheDir, "onnxruntime-*.archive")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temporary archive file: %w", err)
	}
	tmpPath := tmpFile.Name()
	success := false
	defer func() {
		closeErr := tmpFile.Close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	written, copyErr := io.Copy(io.MultiWriter(tmpFile, hasher), resp.Body)
	if copyErr != nil {
		return "", "", fmt.Errorf("failed to write runtime archive to %q: %w", tmpPath, copyErr)
	}
	if written == 0 {
		return "", "", fmt.Errorf("downloaded runtime archive is empty")
	}

	success = true
	return tmpPath, hex.EncodeToString(hasher.Sum(nil)), nil
}

func extractArchive(archivePath, destinationDir, extension string) error {
	switch extension {
	case "tgz":
		return extractTGZ(archivePath, destinationDir)
	case "zip":
		return extractZIP(archivePath, destinationDir)
	default:
		return fmt.Errorf("unsupported archive extension %q", extension)
	}
}

func extractTGZ(archivePath, destinationDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %q: %w", archivePath, err)
	}
	defer func() {
		_ = archiveFile.Close()
	}()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("failed to read gzip archive %q: %w", archivePath, err)
	}
	defer func() {
		_ = gzipReader.Close()
	}()

	tarReader := tar.NewReader(gzipReader)
	regularFiles := 0

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry from %q: %w", archivePath, err)
		}

		targetPath, err := safeArchiveJoin(destinationDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", targetPath, err)
			}
		case tar.TypeReg:
			if err := writeExtractedFile(targetPath, tarReader, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
			regularFiles++
		case tar.TypeXHeader, tar.TypeXGlobalHeader:
			continue
		default:
			// Links and device entries are skipped; shared libraries in
			// the release archives are regular files.
			continue
		}
	}

	if regularFiles == 0 {
		return fmt.Errorf("archive %q did not contain regular files", archivePath)
	}
	return nil
}

func extractZIP(archivePath, destinationDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open ZIP archive %q: %w", archivePath, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	regularFiles := 0
	for _, entry := range reader.File {
		targetPath, err := safeArchiveJoin(destinationDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", targetPath, err)
			}
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open ZIP entry %q: %w", entry.Name, err)
		}
		writeErr := writeExtractedFile(targetPath, rc, entry.Mode().Perm())
		closeErr := rc.Close()
		if writeErr != nil {
			return writeErr
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close ZIP entry %q: %w", entry.Name, closeErr)
		}
		regularFiles++
	}

	if regularFiles == 0 {
		return fmt.Errorf("archive %q did not contain regular files", archivePath)
	}
	return nil
}

func writeExtractedFile(targetPath string, content io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %q: %w", targetPath, err)
	}

	if mode == 0 {
		mode = 0o644
	}
	outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create extracted file %q: %w", targetPath, err)
	}

	if _, err := io.Copy(outFile, content); err != nil {
		_ = outFile.Close()
		return fmt.Errorf("failed to extract file %q: %w", targetPath, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close extracted file %q: %w", targetPath, err)
	}
	return nil
}

func findInstalledLibrary(installDir string, artifact releaseArtifact) (string, error) {
	libDir := filepath.Join(installDir, "lib")

	var invalidCandidates []error
	trackCandidate := func(path string, validationErr error) {
		if validationErr == nil || errors.Is(validationErr, os.ErrNotExist) {
			return
		}
		invalidCandidates = append(invalidCandidates, fmt.Errorf("%s: %w", path, validationErr))
	}

	primaryPath := filepath.Join(libDir, artifact.libraryName)
	if path, err := validateLibraryFile(primaryPath); err == nil {
		return path, nil
	} else {
		trackCandidate(primaryPath, err)
	}

	matches, err := filepath.Glob(filepath.Join(libDir, artifact.libraryGlob))
	if err != nil {
		return "", fmt.Errorf("failed to resolve runtime library path: %w", err)
	}
	sort.Strings(matches)
	for _, match := range matches {
		path, err := validateLibraryFile(match)
		if err == nil {
			return path, nil
		}
		trackCandidate(match, err)
	}

	if len(invalidCandidates) > 0 {
		return "", fmt.Errorf("shared library candidates in %q are all invalid: %w", libDir, errors.Join(invalidCandidates...))
	}
	return "", errRuntimeLibraryNotFound
}

func validateLibraryFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("library path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat library file %q: %w", absPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("library path points to a directory: %q", absPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("library file is empty: %q", absPath)
	}

	return absPath, nil
}

func withProcessFileLock(lockPath string, fn func() error) (err error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory for %q: %w", lockPath, err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open lock file %q: %w", lockPath, err)
	}

	if err := lockFile(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to acquire lock %q: %w", lockPath, err)
	}

	defer func() {
		unlockErr := unlockFile(file)
		closeErr := file.Close()
		err = errors.Join(err, unlockErr, closeErr)
	}()

	return fn()
}

// safeArchiveJoin joins an archive entry path under baseDir, rejecting
// absolute paths, drive letters, and any traversal out of baseDir.
func safeArchiveJoin(baseDir, archivePath string) (string, error) {
	archivePath = strings.TrimSpace(archivePath)
	if archivePath == "" {
		return "", fmt.Errorf("invalid empty archive entry path")
	}

	normalized := strings.ReplaceAll(archivePath, "\\", "/")
	if strings.HasPrefix(normalized, "/") {
		return "", fmt.Errorf("invalid absolute archive entry path %q", archivePath)
	}
	if len(normalized) >= 2 && isASCIILetter(normalized[0]) && normalized[1] == ':' {
		return "", fmt.Errorf("invalid archive entry path with drive letter %q", archivePath)
	}

	cleaned := filepath.Clean(normalized)
	if cleaned == "." {
		return "", fmt.Errorf("invalid archive entry path %q", archivePath)
	}

	targetPath := filepath.Join(baseDir, cleaned)
	relPath, err := filepath.Rel(baseDir, targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive path %q: %w", archivePath, err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("unsafe archive entry path %q", archivePath)
	}

	return targetPath, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func defaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err == nil && cacheDir != "" {
		return filepath.Join(cacheDir, "ortbind", "onnxruntime")
	}

	fallback := filepath.Join(os.TempDir(), "ortbind", "onnxruntime")
	cacheFallbackWarnOnce.Do(func() {
		log.Printf("WARNING: using temporary runtime cache at %q; set ONNXRUNTIME_CACHE_DIR for a persistent cache", fallback)
	})
	return fallback
}

func parseBoolEnv(name string) (bool, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false, nil
	}

	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, nil
	}

	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value for %s: %q", name, value)
	}
}
