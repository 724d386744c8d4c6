package hcl

// fileRoot decodes every top-level block a configuration file may hold.
// All blocks and attributes are optional; unset values keep the layer below.
type fileRoot struct {
	App      *appBlock      `hcl:"app,block"`
	Window   *windowBlock   `hcl:"window,block"`
	DeepLink *deepLinkBlock `hcl:"deep_link,block"`
	Bridge   *bridgeBlock   `hcl:"bridge,block"`
	Log      *logBlock      `hcl:"log,block"`
}

type appBlock struct {
	Name       *string `hcl:"name,optional"`
	Identifier *string `hcl:"identifier,optional"`
}

type windowBlock struct {
	Title  *string `hcl:"title,optional"`
	Width  *int    `hcl:"width,optional"`
	Height *int    `hcl:"height,optional"`
}

type deepLinkBlock struct {
	Schemes *[]string `hcl:"schemes,optional"`
	Event   *string   `hcl:"event,optional"`
}

type bridgeBlock struct {
	Listen *string `hcl:"listen,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}
