package configs

// Configurable is a value type bound to one path in the config files.
type Configurable interface {
	ConfigExpr() string
}

// Lookup reads the value of a Configurable type from its own path.
func Lookup[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigExpr())
}
