// Package config loads recipes.json, the configuration of the recipes
// server and CLI.
//
// # Configuration File Structure
//
//	{
//	  "name": "recipes",
//	  "server": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "urlMode": "replace",
//	    "shutdownTimeout": "5s"
//	  },
//	  "edamam": {
//	    "baseUrl": "https://api.edamam.com",
//	    "appId": "...",
//	    "appKey": "...",
//	    "timeout": "10s"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// Environment variables override the file: EDAMAM_APP_ID, EDAMAM_APP_KEY and
// RECIPES_PORT.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyEnv(os.Getenv)
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
