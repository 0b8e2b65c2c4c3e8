package drawer

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dws/pkg/pipeline/measure"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m       measure.Measure
	output  string
	elapsed time.Duration
}

func (pd *pipelineDrawer) New() error {
	return nil
}

// BeforeDispatch draws the uploaded files, the parts built from them, the action chain and the output.
func (pd *pipelineDrawer) BeforeDispatch(info *model.DispatchInfo) error {
	pd.output = sanitize(info.Name)

	err := pd.AddNode(pd.output, OutputNode)
	if err != nil {
		return errors.Wrap(err, "unable to add output node to drawer")
	}

	files := make(map[string]string, len(info.Slots))

	for _, slot := range info.Slots {
		name := sanitize(fmt.Sprintf("%s: %s", slot.FieldName, slot.Filename))
		files[slot.FieldName] = name

		err := pd.AddNode(name, FileNode)
		if err != nil {
			return err
		}
	}

	actions := make([]string, 0, len(info.Instructions.Actions))

	for i, action := range info.Instructions.Actions {
		name := fmt.Sprintf("%d. %s", i+1, action.Type())

		err := pd.AddNode(name, ActionNode)
		if err != nil {
			return err
		}

		if i > 0 {
			err = pd.AddLink(actions[i-1], name)
			if err != nil {
				return err
			}
		}

		actions = append(actions, name)
	}

	first := pd.output
	if len(actions) > 0 {
		first = actions[0]

		err = pd.AddLink(actions[len(actions)-1], pd.output)
		if err != nil {
			return err
		}
	}

	for i, part := range info.Instructions.Parts {
		name := partName(i, part)

		err := pd.AddNode(name, PartNode)
		if err != nil {
			return err
		}

		if file, ok := files[part.File]; ok {
			err = pd.AddLink(file, name)
			if err != nil {
				return err
			}
		}

		err = pd.AddLink(name, first)
		if err != nil {
			return err
		}
	}

	err = pd.ColourChain(actions)
	if err != nil {
		return errors.Wrap(err, "unable to colour actions")
	}

	return nil
}

func (pd *pipelineDrawer) AfterDispatch(_ *model.DispatchInfo, result *model.DispatchResult) error {
	pd.elapsed = result.Elapsed

	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	} else {
		err := pd.SetTotalTime(pd.output, pd.elapsed)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

func partName(i int, part model.Part) string {
	switch {
	case part.Page == model.NewPage && part.Layout != nil:
		return fmt.Sprintf("part %d: %d new %s %s page(s)", i, part.PageCount, part.Layout.Size, part.Layout.Orientation)
	case part.Page == model.NewPage:
		return fmt.Sprintf("part %d: %d new page(s)", i, part.PageCount)
	case part.Pages == nil:
		return fmt.Sprintf("part %d: all pages", i)
	case part.Pages.End == nil:
		return fmt.Sprintf("part %d: pages %d+", i, part.Pages.Start)
	default:
		return fmt.Sprintf("part %d: pages %d-%d", i, part.Pages.Start, *part.Pages.End)
	}
}

var sanitizer = strings.NewReplacer(`"`, "'", "<", "(", ">", ")", "&", "+")

func sanitize(name string) string {
	return sanitizer.Replace(name)
}

// PipelineDrawer draws the plan of a single pipeline and writes it once the pipeline succeeded.
// When measure is set, the output node is annotated with its metric, otherwise with the dispatch duration.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
