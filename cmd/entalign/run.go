package main

// runCommand runs the whole pipeline over one language.
func runCommand(opts Options, ui UI) error {
	opts.Stage = stageAll

	steps := []func(Options, UI) error{
		convertCommand,
		mapCommand,
		mergeCommand,
		combineCommand,
	}
	for _, step := range steps {
		if err := step(opts, ui); err != nil {
			return err
		}
	}
	return nil
}
