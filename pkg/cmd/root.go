package cmd

const (
	RootCmdName  = "ausmotors"
	RootCmdShort = "Aus Motors storefront"
	RootCmdLong  = `ausmotors serves the Aus Motors vehicle storefront. It loads the listing
catalog from the backend once at startup and renders search, filtering,
the inventory carousel and the finance calculator.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Start the storefront HTTP server"
	ServeCmdLong  = `serve loads vehicles, categories, makes and price ranges from the backend
and starts the storefront. Settings come from flags or AUSMOTORS_* environment
variables; SERVER_ADDRESS overrides the listen address.`
)
