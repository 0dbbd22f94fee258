package sqlinline

// SQLite flavours of the generation history statements.

const QSQLiteCreateGenerationEvents = `--sql 268edbc3-6811-4056-9cea-021741708075
create table if not exists generation_events (
  id text primary key,
  session_id text not null,
  mode text not null,
  ok integer not null,
  category text not null default '',
  http_status integer not null,
  artifact_ref text not null default '',
  message text not null default '',
  attempts integer not null default 0,
  started_at text not null,
  finished_at text not null
);
create index if not exists generation_events_session_idx
  on generation_events (session_id, finished_at desc);
`

const QSQLiteInsertGenerationEvent = `--sql c6c01a86-43d7-4601-aeb1-ddd0bf758e8e
insert or ignore into generation_events(
  id, session_id, mode, ok, category, http_status,
  artifact_ref, message, attempts, started_at, finished_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const QSQLiteRecentGenerationEvents = `--sql 5b9f3a47-5e6f-4309-b9bf-68e02eaff711
select
  id, session_id, mode, ok, category, http_status,
  artifact_ref, message, attempts, started_at, finished_at
from generation_events
where (? = '' or session_id = ?)
order by finished_at desc
limit ?;
`
