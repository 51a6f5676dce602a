package cli

func (a *App) commands() map[string]command {
	return map[string]command{
		"signup":    {usage: "signup", help: "create an account and sign in", when: signedOut, run: a.SignUp},
		"signin":    {usage: "signin", help: "sign in", when: signedOut, run: a.SignIn},
		"logout":    {usage: "logout", help: "end the session", when: signedIn, run: a.Logout},
		"token":     {usage: "token", help: "get a chat bot integration token", when: signedIn, run: a.Token},
		"profile":   {usage: "profile [login]", help: "show a user's profile", run: a.Profile},
		"edit":      {usage: "edit", help: "edit your profile", when: signedIn, run: a.Edit},
		"subscribe": {usage: "subscribe [login]", help: "toggle subscription to a user", when: signedIn, run: a.Subscribe},
		"password":  {usage: "password", help: "change your password", when: signedIn, run: a.Password},
		"tab":       {usage: "tab added|liked", help: "switch the profile recipe list", run: a.Tab},
		"search":    {usage: "search [by=field[:asc|:desc]] text...", help: "search recipes", run: a.Search},
		"all":       {usage: "all", help: "list all recipes", run: a.All},
		"list":      {usage: "list", help: "show the current page again", run: a.List},
		"next":      {usage: "next", help: "next page", run: a.Next},
		"prev":      {usage: "prev", help: "previous page", run: a.Prev},
		"page":      {usage: "page <n>", help: "jump to a page", run: a.Page},
		"show":      {usage: "show <id>", help: "show a recipe with comments", run: a.Show},
		"create":    {usage: "create", help: "add a recipe", when: signedIn, run: a.Create},
		"update":    {usage: "update <id>", help: "change a recipe", when: signedIn, run: a.Update},
		"delete":    {usage: "delete <id>", help: "delete a recipe", when: signedIn, run: a.Delete},
		"like":      {usage: "like <id>", help: "like a recipe", when: signedIn, run: a.Like},
		"unlike":    {usage: "unlike <id>", help: "remove a like", when: signedIn, run: a.Unlike},
	}
}
