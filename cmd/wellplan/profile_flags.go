package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/form"
)

// profileFlags binds the form fields to command-line flags.
type profileFlags struct {
	values form.Values
}

func (f *profileFlags) register(cmd *cobra.Command) {
	d := form.Defaults(time.Now())
	fs := cmd.Flags()
	fs.StringVar(&f.values.Name, "name", "", "your name")
	fs.StringVar(&f.values.Age, "age", d.Age, "age in years")
	fs.StringVar(&f.values.Gender, "gender", d.Gender, "Male, Female or Other")
	fs.StringVar(&f.values.Weight, "weight", d.Weight, "weight in kg")
	fs.StringVar(&f.values.Height, "height", d.Height, "height in cm")
	fs.StringVar(&f.values.Goal, "goal", d.Goal, "Weight Loss, Weight Gain or Maintenance")
	fs.StringVar(&f.values.Diet, "diet", d.Diet, "Vegetarian, Vegan, Keto, Halal or None")
	fs.StringVar(&f.values.Allergies, "allergies", "", "food allergies, if any")
	fs.StringVar(&f.values.Cuisine, "cuisine", "", "preferred local cuisine, e.g. Indian")
	fs.StringVar(&f.values.Month, "month", d.Month, "month the plan is for")
	fs.BoolVar(&f.values.Ayurveda, "ayurveda", d.Ayurveda, "include Ayurvedic wellness insights")
}
