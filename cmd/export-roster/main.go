package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/dataset"
	"github.com/stemsi/educonnect-backend/internal/logger"
	"github.com/stemsi/educonnect-backend/internal/repository"
	"github.com/stemsi/educonnect-backend/internal/service"
)

func main() {
	var (
		serie string
		out   string
		all   bool
	)
	flag.StringVar(&serie, "serie", "", "Class label to export, e.g. \"6º A\"")
	flag.StringVar(&out, "out", "", "Output file (default turma-<serie>.xlsx, unsafe characters replaced)")
	flag.BoolVar(&all, "all", false, "Export every class, one file each")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	classService := service.NewClassService(ds, repository.NewClassRepository(), log)

	var series []string
	switch {
	case all:
		for _, c := range classService.List() {
			series = append(series, c.Serie)
		}
	case serie != "":
		series = []string{serie}
	default:
		fmt.Println("Usage: export-roster -serie \"6º A\" [-out file.xlsx] | -all")
		flag.PrintDefaults()
		os.Exit(2)
	}

	for _, s := range series {
		path := out
		if path == "" || all {
			path = service.RosterFileName(s)
		}

		data, err := classService.Export(s)
		if err != nil {
			log.Fatal().Err(err).Str("serie", s).Msg("Failed to export roster")
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to write roster")
		}
		fmt.Printf("Exported %s (%d students) to %s\n", s, len(classService.Students(s)), path)
	}
}
