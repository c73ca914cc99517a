package lingo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/afero"

	"github.com/agentstation/lingo"
	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/tree"
)

// Example demonstrates reconciling one target tree.
func Example() {
	lc, err := lingo.New()
	if err != nil {
		log.Fatal(err)
	}

	reference := tree.ObjectOf("greeting", "Hello", "farewell", "Goodbye")
	target := tree.ObjectOf("farewell", "Au revoir", "obsolete", "x")

	res, err := lc.Reconcile(target, reference)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Tree.Keys())
	fmt.Println(res.Stats.Summary())
	// Output:
	// [greeting farewell]
	// 1/2 translated, 1 fell back
}

// ExampleClient_Sync demonstrates a batch over an in-memory filesystem.
func ExampleClient_Sync() {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "locales/en.json", []byte(`{"a":"A","b":"B"}`), 0o644)
	_ = afero.WriteFile(fs, "locales/fr.json", []byte(`{"b":"Bé"}`), 0o644)

	lc, err := lingo.New(lingo.WithFs(fs))
	if err != nil {
		log.Fatal(err)
	}

	report, err := lc.Sync(context.Background(), batch.Plan{
		Reference: "locales/en.json",
		Targets:   []batch.Target{batch.NewTarget("locales/fr.json", "")},
	})
	if err != nil {
		log.Fatal(err)
	}

	data, _ := afero.ReadFile(fs, "locales/fr.json")
	fmt.Print(string(data))
	fmt.Println(report.Targets[0].Summary())
	// Output:
	// {
	//   "a": "A",
	//   "b": "Bé"
	// }
	// fr (locales/fr.json): 1/2 translated, 1 fell back
}
