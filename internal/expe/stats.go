package expe

// Stats summarizes an Expe for reporting and for the save-suffix naming
// convention used by the filename suffix.
type Stats struct {
	Questions int
	Chunks    int
	Facts     int
	Models    int
	Answers   int
	HumanEval int
	AutoEval  int
}

// Stats computes the counts used to build a canonical file name suffix.
func (e *Expe) Stats() Stats {
	var s Stats
	for i := range e.QAs {
		qa := &e.QAs[i]
		if qa.Question.Text != "" {
			s.Questions++
		}
		for _, c := range qa.Chunks.Items {
			if c.Text != "" {
				s.Chunks++
			}
		}
		for _, f := range qa.Facts.Items {
			if f.Text != "" {
				s.Facts++
			}
		}
		for _, a := range qa.Answers.Items {
			if a.Text != "" {
				s.Answers++
			}
			if a.Eval != nil {
				if a.Eval.Human != nil {
					s.HumanEval++
				}
				if a.Eval.Auto != nil {
					s.AutoEval++
				}
			}
		}
	}
	if len(e.QAs) > 0 {
		s.Models = len(e.QAs[0].Answers.Items)
	}
	return s
}
