package plugin

// Config controls the behaviour of the placeholder provider loader.
type Config struct {
	// Enabled specifies if providers should be loaded at all. When false, no
	// provider files will be discovered or opened.
	Enabled bool
	// Directory is the base directory used when automatically discovering
	// providers or when resolving relative file paths in Files.
	Directory string
	// Autoload controls whether every .so file in Directory should be probed
	// and loaded automatically.
	Autoload bool
	// Files enumerates additional provider files to load. Entries without an
	// absolute path are resolved relative to Directory.
	Files []string
}
