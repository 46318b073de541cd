package oracle

import (
	"encoding/json"
	"fmt"

	"drama/script"
)

const sceneGenPrompt = `You are the scriptwriter of an interactive murder mystery.

Here is the script so far, keyed by scene title:
%s

Here is the play history:
%s

Write the next scene following %q. Answer with a single JSON object with
exactly one key, the new scene's title, mapping to the scene body. The
body may carry "plot" (a list of plot points), "interactions" (an object
with "dialogue" and "actions" lists) and "triggers" (mapping an action to
an object with a "jump" to another scene title). Start the title of a
final scene with "ending". Answer with JSON only.`

const sceneEvalPrompt = `You are reviewing candidate scenes for an interactive murder mystery.

Here is the script so far, keyed by scene title:
%s

Here is the play history:
%s

Rate how well this candidate scene continues the story, considering
coherence with the established plot, dramatic tension and playability:
%s

Answer with a single JSON object of the form {"score": <number between 0
and 5>, "reason": "<one sentence>"}. Answer with JSON only.`

func genPrompt(from script.Scene, sc script.Script, glog *script.GameLog) string {
	return fmt.Sprintf(sceneGenPrompt, render(sc), render(glog), continueFrom(from, glog))
}

func evalPrompt(state script.Scene, sc script.Script, glog *script.GameLog) string {
	return fmt.Sprintf(sceneEvalPrompt, render(sc), render(glog), render(state))
}

// render pretty-prints a value for prompt interpolation.
func render(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// continueFrom names the scene a proposal should follow: the given scene
// when there is one, otherwise the scene played last, otherwise the
// opening.
func continueFrom(from script.Scene, glog *script.GameLog) string {
	if from != nil {
		return from.Title()
	}
	if glog != nil && len(glog.InteractionHistory) > 0 {
		return glog.InteractionHistory[len(glog.InteractionHistory)-1].Scene
	}
	return script.OpeningScene
}
