package entity

// Descriptor names a remote source file, its expected MD5 hex digest and the
// URL it is downloaded from.
type Descriptor struct {
	Name     string `mapstructure:"name"`
	Checksum string `mapstructure:"checksum"`
	URL      string `mapstructure:"url"`
}
