// Package config provides configuration parsing for dailycontents.
//
// The configuration lives in dailycontents.yaml (or .yml / .json) next to
// where the CLI runs. Every field is optional; missing values fall back to
// the defaults returned by New.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 3000
//	  readTimeout: 10s
//	  shutdownTimeout: 5s
//	site:
//	  owner: Daily Contents
//	  lang: en
//	export:
//	  dir: dist
//	  bucket: my-site
//	  region: eu-west-1
//	metrics:
//	  enabled: true
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.LoadFile("dailycontents.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
