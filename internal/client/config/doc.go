// Package config loads AY-Code CLI settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults (LoadDefaults);
//  2. an optional JSON file given by --config or $AYCODE_CLIENT_CONFIG;
//  3. command-line flags, bound by the cobra root command.
//
// Example JSON:
//
//	{
//	  "server_url": "https://aycode.example.com",
//	  "request_timeout": "5s"
//	}
package config
