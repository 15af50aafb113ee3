package main

// Blank imports ensure preparator init() registration runs for the CLI binary.
import (
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/datatype"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/dateformat"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/deleteprop"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/escape"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/parsedate"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/rename"
	_ "github.com/alexisbeaulieu97/dataprep/internal/preparators/sampling"
)
