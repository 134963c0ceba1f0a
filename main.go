package main

import (
	"encoding/json"
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"nlsql/pipeline"
	"nlsql/web"
	"strings"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging   string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version   VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Translate struct {
		Query string `help:"The natural language query." placeholder:"<query>" arg:""`
	} `cmd:"" help:"Translates the given natural language query into SQL."`
	Server struct {
		Port string `help:"The port to listen on." default:"8080"`
	} `cmd:"" help:"Starts the HTTP API to translate queries."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("nlsql"),
		kong.Description("A simple tool to translate natural language queries into SQL."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "translate <query>":
		result := pipeline.Process(cli.Translate.Query)

		resultBytes, err := json.Marshal(result)
		sigolo.FatalCheck(err)

		fmt.Println(string(resultBytes))
	case "server":
		web.StartServer(cli.Server.Port)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}
