// Package config loads runtime configuration for the gophsocial CLI.
//
// Sources, later ones winning: built-in defaults, a JSON file given with -c
// or -config, GOPHSOCIAL_* environment variables, and the flags -a (server
// URL), -t (request timeout) and -i (online check interval).
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
