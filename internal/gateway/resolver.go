package gateway

// Source identifica de onde vieram os dados exibidos
type Source string

const (
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
	SourceSample Source = "sample"
)

type CacheProbe struct {
	Present    bool
	Compatible bool
}

func (p CacheProbe) Usable() bool {
	return p.Present && p.Compatible
}

type RemoteProbe struct {
	Available bool
	HasData   bool
}

// SelectSource aplica a ordem cache, API remota e dados de exemplo
func SelectSource(cache CacheProbe, remote RemoteProbe) Source {
	if cache.Usable() {
		return SourceCache
	}
	if remote.Available && remote.HasData {
		return SourceRemote
	}
	return SourceSample
}
